package scheduler

import (
	"math"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/config"
)

// Run-count bounds shared by both schedule representations.
const (
	MinScheduledRuns = 2
	MaxScheduledRuns = 8

	// Domain convention: one run occupies one half-hour planning slot. The
	// target scheduler has hour granularity only, so this sizing affects
	// the derived window, not the executed cadence.
	HoursPerRun = 0.5
)

// RunTime is a single hour-of-day descriptor; each one materializes as one
// scheduler registration.
type RunTime struct {
	Hour int
}

// Plan is the outcome of translating schedule intent into concrete run
// times. RunCount is the derived (window mode) or requested (count mode) run
// count; len(RunTimes) can be lower than RunCount in count mode because
// half-hour slots collapse at hour granularity.
type Plan struct {
	Mode      string
	StartHour int
	StopHour  float64
	RunCount  int
	RunTimes  []RunTime
}

// CalculateSchedule translates schedule configuration into a Plan. It is a
// pure function: invalid bounds produce a descriptive error and no side
// effects.
func CalculateSchedule(sc config.ScheduleConfig) (Plan, error) {
	switch sc.Mode {
	case config.ScheduleModeWindow:
		return calculateWindowPlan(sc.StartHour, sc.StopHour)
	case config.ScheduleModeCount:
		return calculateCountPlan(sc.MaxRunsPerDay, sc.StartHour)
	default:
		return Plan{}, errorwrapper.NewValidationError("mode", sc.Mode, "schedule mode must be window or count")
	}
}

// calculateWindowPlan derives the run count from an explicit start/stop hour
// window.
func calculateWindowPlan(startHour, stopHour int) (Plan, error) {
	if stopHour <= startHour {
		return Plan{}, errorwrapper.NewError("stop hour (%d) must be after start hour (%d)", stopHour, startHour)
	}
	runCount := stopHour - startHour
	if runCount < MinScheduledRuns {
		return Plan{}, errorwrapper.NewError("monitoring window must span at least %d hours, got %d", MinScheduledRuns, runCount)
	}
	if runCount > MaxScheduledRuns {
		return Plan{}, errorwrapper.NewError("monitoring window of %d hours exceeds the maximum of %d runs", runCount, MaxScheduledRuns)
	}

	return Plan{
		Mode:      config.ScheduleModeWindow,
		StartHour: startHour,
		StopHour:  float64(stopHour),
		RunCount:  runCount,
		RunTimes:  hourlyRunTimes(startHour, float64(stopHour)),
	}, nil
}

// calculateCountPlan derives the stop hour from a requested run count at one
// half-hour per run.
func calculateCountPlan(runCount, startHour int) (Plan, error) {
	if runCount < MinScheduledRuns || runCount > MaxScheduledRuns {
		return Plan{}, errorwrapper.NewError("run count must be between %d and %d, got %d", MinScheduledRuns, MaxScheduledRuns, runCount)
	}
	stopHour := float64(startHour) + float64(runCount)*HoursPerRun
	if stopHour > 24 {
		return Plan{}, errorwrapper.NewError("%d runs starting at hour %d would end at %.1f, past midnight", runCount, startHour, stopHour)
	}

	return Plan{
		Mode:      config.ScheduleModeCount,
		StartHour: startHour,
		StopHour:  stopHour,
		RunCount:  runCount,
		RunTimes:  hourlyRunTimes(startHour, stopHour),
	}, nil
}

// hourlyRunTimes materializes one run per whole hour inside [startHour,
// stopHour). The registration count is floor(stopHour) - startHour.
func hourlyRunTimes(startHour int, stopHour float64) []RunTime {
	lastHour := int(math.Floor(stopHour))
	runs := make([]RunTime, 0, lastHour-startHour)
	for hour := startHour; hour < lastHour; hour++ {
		runs = append(runs, RunTime{Hour: hour})
	}
	return runs
}
