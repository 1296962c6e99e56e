package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
)

// CronRegistry is a RunRegistry backed by an in-process cron scheduler. Each
// registered run fires the entry point's job once per day at the given hour.
type CronRegistry struct {
	logger zerolog.Logger
	cron   *cron.Cron
	jobs   map[string]func(ctx context.Context)

	mu      sync.Mutex
	entries map[string]cronEntry
	nextID  int
}

type cronEntry struct {
	entryID    cron.EntryID
	entryPoint string
	hour       int
}

// NewCronRegistry creates a cron-backed registry. Jobs are registered per
// entry point before runs are added.
func NewCronRegistry(logger zerolog.Logger) *CronRegistry {
	return &CronRegistry{
		logger:  logger.With().Str("module", "CronRegistry").Logger(),
		cron:    cron.New(),
		jobs:    make(map[string]func(ctx context.Context)),
		entries: make(map[string]cronEntry),
	}
}

// SetJob binds the function executed by runs of the given entry point.
func (cr *CronRegistry) SetJob(entryPoint string, job func(ctx context.Context)) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.jobs[entryPoint] = job
}

// Start begins executing registered runs.
func (cr *CronRegistry) Start() {
	cr.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (cr *CronRegistry) Stop() {
	<-cr.cron.Stop().Done()
}

// RegisterDailyRun registers one daily run at the given hour.
func (cr *CronRegistry) RegisterDailyRun(entryPoint string, hour int) (string, error) {
	if hour < 0 || hour > 23 {
		return "", errorwrapper.NewValidationError("hour", hour, "hour must be between 0 and 23")
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()

	job, ok := cr.jobs[entryPoint]
	if !ok {
		return "", errorwrapper.NewError("no job bound for entry point %q", entryPoint)
	}

	spec := fmt.Sprintf("0 %d * * *", hour)
	entryID, err := cr.cron.AddFunc(spec, func() { job(context.Background()) })
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to add cron entry")
	}

	cr.nextID++
	id := fmt.Sprintf("%s-%d", entryPoint, cr.nextID)
	cr.entries[id] = cronEntry{entryID: entryID, entryPoint: entryPoint, hour: hour}

	cr.logger.Debug().Str("run_id", id).Int("hour", hour).Msg("Registered daily run")
	return id, nil
}

// ListRuns returns the runs registered for an entry point.
func (cr *CronRegistry) ListRuns(entryPoint string) ([]RegisteredRun, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	var runs []RegisteredRun
	for id, entry := range cr.entries {
		if entry.entryPoint == entryPoint {
			runs = append(runs, RegisteredRun{ID: id, Hour: entry.hour})
		}
	}
	return runs, nil
}

// RemoveRun unregisters a run by its id. Removing an unknown id is not an
// error.
func (cr *CronRegistry) RemoveRun(id string) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	entry, ok := cr.entries[id]
	if !ok {
		return nil
	}
	cr.cron.Remove(entry.entryID)
	delete(cr.entries, id)

	cr.logger.Debug().Str("run_id", id).Int("hour", entry.hour).Msg("Removed daily run")
	return nil
}
