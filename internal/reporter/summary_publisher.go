package reporter

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/datastore"
	"github.com/aleister1102/drivewatch/internal/models"
	"github.com/aleister1102/drivewatch/internal/notifier"
)

// SummaryPublisher aggregates the change log and dispatches daily and weekly
// activity summaries.
type SummaryPublisher struct {
	logger   zerolog.Logger
	db       *datastore.DB
	notifier *notifier.NotificationHelper
	clock    func() time.Time
}

// NewSummaryPublisher creates a summary publisher over the change log.
func NewSummaryPublisher(db *datastore.DB, notificationHelper *notifier.NotificationHelper, logger zerolog.Logger) *SummaryPublisher {
	return &SummaryPublisher{
		logger:   logger.With().Str("module", "SummaryPublisher").Logger(),
		db:       db,
		notifier: notificationHelper,
		clock:    time.Now,
	}
}

// PublishDaily aggregates one day and sends the summary. An empty dateKey
// summarizes yesterday.
func (sp *SummaryPublisher) PublishDaily(ctx context.Context, dateKey string, cfg config.NotificationConfig) (*models.SummaryRecord, error) {
	if !cfg.SummaryEnabled {
		sp.logger.Debug().Msg("Summaries disabled, skipping daily publish")
		return nil, nil
	}
	if dateKey == "" {
		dateKey = sp.clock().AddDate(0, 0, -1).Format(datastore.DateKeyLayout)
	}

	summary, err := sp.db.AggregateDaily(dateKey)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to aggregate daily activity")
	}
	if err := sp.notifier.NotifySummary(ctx, summary, cfg); err != nil {
		return summary, errorwrapper.WrapError(err, "failed to deliver daily summary")
	}

	sp.logger.Info().Str("date", dateKey).Int("total", summary.Total).Msg("Daily summary published")
	return summary, nil
}

// PublishWeekly aggregates the seven days ending yesterday, including trend
// deltas against the week before, and sends the summary.
func (sp *SummaryPublisher) PublishWeekly(ctx context.Context, cfg config.NotificationConfig) (*models.SummaryRecord, error) {
	if !cfg.SummaryEnabled {
		sp.logger.Debug().Msg("Summaries disabled, skipping weekly publish")
		return nil, nil
	}

	end := sp.clock().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	startKey := start.Format(datastore.DateKeyLayout)
	endKey := end.Format(datastore.DateKeyLayout)

	summary, err := sp.db.AggregateWeekly(startKey, endKey)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to aggregate weekly activity")
	}
	if err := sp.notifier.NotifySummary(ctx, summary, cfg); err != nil {
		return summary, errorwrapper.WrapError(err, "failed to deliver weekly summary")
	}

	sp.logger.Info().
		Str("start", startKey).
		Str("end", endKey).
		Int("total", summary.Total).
		Msg("Weekly summary published")
	return summary, nil
}

// DueWeekly reports whether the weekly summary should be published today.
func (sp *SummaryPublisher) DueWeekly(cfg config.NotificationConfig) bool {
	if !cfg.SummaryEnabled {
		return false
	}
	weekday, err := config.ParseWeekday(cfg.SummaryWeekday)
	if err != nil {
		sp.logger.Warn().Err(err).Str("weekday", cfg.SummaryWeekday).Msg("Invalid summary weekday")
		return false
	}
	return sp.clock().Weekday() == weekday
}
