package config

import "time"

// ScanState is the mutable tail of the configuration: the watermark and the
// per-day run accounting. It is replaced wholesale at cycle end, never
// mutated in place.
type ScanState struct {
	// Watermark: files modified after this instant are "new since last look".
	LastCheckTime time.Time `json:"last_check_time,omitempty" yaml:"last_check_time,omitempty"`
	// Date (2006-01-02) the run counter belongs to; the counter resets when
	// a cycle runs on a later date.
	LastRunDate      string `json:"last_run_date,omitempty" yaml:"last_run_date,omitempty"`
	LastRunCount     int    `json:"last_run_count,omitempty" yaml:"last_run_count,omitempty" validate:"min=0"`
	LastChangesFound int    `json:"last_changes_found,omitempty" yaml:"last_changes_found,omitempty" validate:"min=0"`
}

// RunsToday returns the number of cycles already executed on the given day.
func (ss ScanState) RunsToday(now time.Time) int {
	if ss.LastRunDate != now.Format("2006-01-02") {
		return 0
	}
	return ss.LastRunCount
}

// AfterCycle derives the scan state that replaces this one when a cycle
// completes successfully at the given instant.
func (ss ScanState) AfterCycle(now time.Time, changesFound int) ScanState {
	return ScanState{
		LastCheckTime:    now,
		LastRunDate:      now.Format("2006-01-02"),
		LastRunCount:     ss.RunsToday(now) + 1,
		LastChangesFound: changesFound,
	}
}
