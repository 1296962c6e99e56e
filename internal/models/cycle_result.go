package models

import "time"

// CycleResult reports the outcome of one monitoring cycle. A gate failure is
// a normal outcome (Success=false with a reason), not an error.
type CycleResult struct {
	CycleID           string
	Success           bool
	Message           string
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
	ChangesFound      int
	NotificationsSent int
	Changes           []FileChange
}

// NewSkippedCycleResult builds the result for a cycle that did not pass
// gating. No folder scans occur for a skipped cycle.
func NewSkippedCycleResult(cycleID, reason string, now time.Time) CycleResult {
	return CycleResult{
		CycleID:   cycleID,
		Success:   false,
		Message:   reason,
		StartTime: now,
		EndTime:   now,
	}
}

// NewFailedCycleResult builds the result for a cycle aborted by a fatal
// failure such as configuration load or watermark persistence errors.
func NewFailedCycleResult(cycleID, message string, startTime, endTime time.Time) CycleResult {
	return CycleResult{
		CycleID:   cycleID,
		Success:   false,
		Message:   message,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  endTime.Sub(startTime),
	}
}
