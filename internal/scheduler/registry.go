package scheduler

// Entry point names under which daily runs are registered.
const (
	EntryPointMonitorCycle = "monitor-cycle"
	EntryPointDailySummary = "daily-summary"
)

// RegisteredRun is one run time currently registered with the external
// scheduler.
type RegisteredRun struct {
	ID   string
	Hour int
}

// RunRegistry abstracts the external time-based scheduler: daily runs
// registered at hour granularity for a named entry point.
type RunRegistry interface {
	RegisterDailyRun(entryPoint string, hour int) (id string, err error)
	ListRuns(entryPoint string) ([]RegisteredRun, error)
	RemoveRun(id string) error
}
