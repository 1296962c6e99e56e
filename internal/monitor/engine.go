package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/datastore"
	"github.com/aleister1102/drivewatch/internal/drive"
	"github.com/aleister1102/drivewatch/internal/models"
	"github.com/aleister1102/drivewatch/internal/notifier"
)

// Engine runs single change-detection cycles: load configuration, gate,
// scan the watched folders, log and notify each change, and persist the new
// watermark. One Engine instance serves all cycles; per-cycle state lives on
// the stack.
type Engine struct {
	logger   zerolog.Logger
	store    config.Store
	source   drive.FileSource
	db       *datastore.DB
	notifier *notifier.NotificationHelper
	clock    func() time.Time

	// Last successfully loaded notification settings, kept so a failure
	// alert can still be attempted when the current configuration is
	// unreadable. Cycles do not run concurrently.
	lastNotifyConfig *config.NotificationConfig
}

// ExecuteOptions controls one cycle invocation.
type ExecuteOptions struct {
	// ForceRun bypasses the active-window gate. The daily run limit and
	// configuration validity still apply.
	ForceRun bool
	// UserID identifies who requested a forced run, for audit logging only.
	UserID string
}

// NewEngine creates a change-detection engine.
func NewEngine(
	store config.Store,
	source drive.FileSource,
	db *datastore.DB,
	notificationHelper *notifier.NotificationHelper,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		logger:   logger.With().Str("module", "MonitorEngine").Logger(),
		store:    store,
		source:   source,
		db:       db,
		notifier: notificationHelper,
		clock:    time.Now,
	}
}

// Execute runs one complete monitoring cycle. Gate failures return a result
// with Success=false and a human-readable reason; they are normal outcomes,
// not errors. Fatal failures (configuration load, watermark persistence)
// also return Success=false after a best-effort failure alert.
func (e *Engine) Execute(ctx context.Context, opts ExecuteOptions) models.CycleResult {
	cycleID := uuid.NewString()
	startTime := e.clock()

	cycleLogger := e.logger.With().Str("cycle_id", cycleID).Logger()
	if opts.ForceRun {
		cycleLogger.Info().Str("user_id", opts.UserID).Msg("Forced cycle requested")
	}

	cfg, err := e.store.Load()
	if err != nil {
		message := fmt.Sprintf("configuration load failed: %v", err)
		cycleLogger.Error().Err(err).Msg("Failed to load configuration")
		if e.lastNotifyConfig != nil {
			e.notifier.NotifyCycleFailure(ctx, cycleID, message, *e.lastNotifyConfig)
		}
		return models.NewFailedCycleResult(cycleID, message, startTime, e.clock())
	}
	notifyConfig := cfg.NotificationConfig
	e.lastNotifyConfig = &notifyConfig

	if gateErr := e.gate(cfg, startTime, opts.ForceRun); gateErr != nil {
		reason := gateErr.Error()
		cycleLogger.Info().Str("reason", reason).Msg("Cycle skipped")
		e.recordSkip(cycleID, reason, startTime)
		return models.NewSkippedCycleResult(cycleID, reason, startTime)
	}

	historyID, err := e.db.RecordCycleStart(cycleID, startTime)
	if err != nil {
		// History is observability, not correctness; the cycle proceeds.
		cycleLogger.Warn().Err(err).Msg("Failed to record cycle start")
	}

	since := e.scanSince(cfg, startTime)
	cycleLogger.Info().
		Time("since", since).
		Int("folders", len(cfg.MonitoringConfig.FolderIDs)).
		Msg("Starting change detection cycle")

	changes, notified := e.scanFolders(ctx, cfg, since, startTime, cycleLogger)

	endTime := e.clock()
	result := models.CycleResult{
		CycleID:           cycleID,
		Success:           true,
		Message:           fmt.Sprintf("detected %d changes across %d folders", len(changes), len(cfg.MonitoringConfig.FolderIDs)),
		StartTime:         startTime,
		EndTime:           endTime,
		Duration:          endTime.Sub(startTime),
		ChangesFound:      len(changes),
		NotificationsSent: notified,
		Changes:           changes,
	}

	updated := cfg.WithScanState(cfg.ScanState.AfterCycle(startTime, len(changes)))
	if err := e.store.Save(updated); err != nil {
		message := fmt.Sprintf("failed to persist scan state: %v", err)
		cycleLogger.Error().Err(err).Msg("Failed to persist scan state")
		e.notifier.NotifyCycleFailure(ctx, cycleID, message, cfg.NotificationConfig)
		e.recordCompletion(historyID, endTime, datastore.CycleStatusFailed, message, len(changes), notified)
		return models.NewFailedCycleResult(cycleID, message, startTime, endTime)
	}

	e.recordCompletion(historyID, endTime, datastore.CycleStatusCompleted, result.Message, len(changes), notified)
	cycleLogger.Info().
		Int("changes_found", len(changes)).
		Int("notifications_sent", notified).
		Dur("duration", result.Duration).
		Msg("Cycle completed")
	return result
}

// gate returns nil when the cycle may run. Skip reasons wrap the shared
// sentinel errors so callers can branch with errors.Is.
func (e *Engine) gate(cfg *config.Config, now time.Time, forceRun bool) error {
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("%w: %v", errorwrapper.ErrInvalidConfiguration, err)
	}
	if !forceRun && !cfg.ScheduleConfig.InsideWindow(now.Hour()) {
		return fmt.Errorf("%w: hour %d is outside the active window [%d, %.1f)",
			errorwrapper.ErrOutsideActiveWindow,
			now.Hour(), cfg.ScheduleConfig.StartHour, cfg.ScheduleConfig.EffectiveStopHour())
	}
	if runs := cfg.ScanState.RunsToday(now); runs >= cfg.ScheduleConfig.MaxRunsPerDay {
		return fmt.Errorf("%w (%d of %d)", errorwrapper.ErrDailyLimitReached, runs, cfg.ScheduleConfig.MaxRunsPerDay)
	}
	return nil
}

// scanSince picks the watermark: the last check time, or the lookback window
// on a first run.
func (e *Engine) scanSince(cfg *config.Config, now time.Time) time.Time {
	if cfg.ScanState.LastCheckTime.IsZero() {
		return now.Add(-time.Duration(cfg.MonitoringConfig.LookbackHours) * time.Hour)
	}
	return cfg.ScanState.LastCheckTime
}

// scanFolders checks every watched folder. A folder-level failure is logged
// and skipped so one bad folder never aborts the cycle.
func (e *Engine) scanFolders(
	ctx context.Context,
	cfg *config.Config,
	since, now time.Time,
	cycleLogger zerolog.Logger,
) ([]models.FileChange, int) {
	classifier := NewChangeClassifier(
		time.Duration(cfg.MonitoringConfig.RelevanceThresholdMins)*time.Minute,
		cycleLogger,
	)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if delay := cfg.MonitoringConfig.InterFolderDelaySecs; delay > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(delay)*time.Second), 1)
	}

	var changes []models.FileChange
	notified := 0
	for _, folderID := range cfg.MonitoringConfig.FolderIDs {
		if err := limiter.Wait(ctx); err != nil {
			cycleLogger.Warn().Err(err).Msg("Cycle cancelled between folder scans")
			break
		}

		folderChanges, folderNotified := e.scanFolder(ctx, cfg, classifier, folderID, since, now, cycleLogger)
		changes = append(changes, folderChanges...)
		notified += folderNotified
	}
	return changes, notified
}

func (e *Engine) scanFolder(
	ctx context.Context,
	cfg *config.Config,
	classifier *ChangeClassifier,
	folderID string,
	since, now time.Time,
	cycleLogger zerolog.Logger,
) ([]models.FileChange, int) {
	folderLogger := cycleLogger.With().Str("folder_id", folderID).Logger()

	folder, err := e.source.GetFolder(ctx, folderID)
	if err != nil {
		folderLogger.Error().Err(err).Msg("Failed to resolve folder, skipping")
		return nil, 0
	}

	files, err := e.source.ListFiles(ctx, folderID, drive.ListOptions{
		ModifiedSince: since,
		Limit:         cfg.MonitoringConfig.MaxFilesPerFolder,
	})
	if err != nil {
		folderLogger.Error().Err(err).Str("folder_name", folder.Name).Msg("Failed to list folder, skipping")
		return nil, 0
	}

	var changes []models.FileChange
	notified := 0
	for _, file := range files {
		for _, change := range classifier.Classify(file, since, now) {
			change = change.WithFolder(folder.ID, folder.Name)
			changes = append(changes, change)

			if err := e.db.LogChange(change); err != nil {
				folderLogger.Error().Err(err).
					Str("file_id", change.FileID).
					Str("change_type", string(change.ChangeType)).
					Msg("Failed to log change")
			}
			if err := e.notifier.NotifyFileChange(ctx, change, cfg.NotificationConfig); err != nil {
				folderLogger.Error().Err(err).
					Str("file_id", change.FileID).
					Msg("Failed to deliver change notification")
			} else {
				notified++
			}
		}
	}

	folderLogger.Debug().
		Str("folder_name", folder.Name).
		Int("files_listed", len(files)).
		Int("changes", len(changes)).
		Msg("Folder scan finished")
	return changes, notified
}

// recordSkip writes a skipped cycle to history in one start+complete pair.
func (e *Engine) recordSkip(cycleID, reason string, now time.Time) {
	historyID, err := e.db.RecordCycleStart(cycleID, now)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Failed to record skipped cycle")
		return
	}
	e.recordCompletion(historyID, now, datastore.CycleStatusSkipped, reason, 0, 0)
}

func (e *Engine) recordCompletion(historyID int64, endTime time.Time, status, message string, changesFound, notificationsSent int) {
	if historyID == 0 {
		return
	}
	if err := e.db.UpdateCycleCompletion(historyID, endTime, status, message, changesFound, notificationsSent); err != nil {
		e.logger.Warn().Err(err).Int64("history_id", historyID).Msg("Failed to record cycle completion")
	}
}
