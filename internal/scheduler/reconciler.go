package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/config"
)

// ReconcileResult reports what the reconciler changed.
type ReconcileResult struct {
	Plan       Plan
	Registered []int // hours newly registered
	Removed    []int // hours (or duplicates) removed
	Kept       []int // hours already registered and still desired
}

// Reconciler diffs a desired schedule plan against the runs currently
// registered with the external scheduler and applies the difference. Because
// the plan is validated before any mutation, an invalid configuration leaves
// the previously registered schedule untouched, and re-applying the same
// configuration is idempotent.
type Reconciler struct {
	logger     zerolog.Logger
	registry   RunRegistry
	entryPoint string
}

// NewReconciler creates a reconciler for the engine's entry point.
func NewReconciler(registry RunRegistry, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		logger:     logger.With().Str("module", "ScheduleReconciler").Logger(),
		registry:   registry,
		entryPoint: EntryPointMonitorCycle,
	}
}

// Reconcile validates the schedule configuration and reconciles the external
// scheduler to match it.
func (r *Reconciler) Reconcile(sc config.ScheduleConfig) (ReconcileResult, error) {
	plan, err := CalculateSchedule(sc)
	if err != nil {
		return ReconcileResult{}, err
	}

	result, err := r.apply(plan)
	if err != nil {
		return ReconcileResult{}, err
	}

	r.logger.Info().
		Str("mode", plan.Mode).
		Int("run_count", plan.RunCount).
		Ints("registered", result.Registered).
		Ints("removed", result.Removed).
		Ints("kept", result.Kept).
		Msg("Schedule reconciled")
	return result, nil
}

// apply diffs the desired run times against the registry. One registration
// per desired hour is kept; everything else for the entry point is removed.
func (r *Reconciler) apply(plan Plan) (ReconcileResult, error) {
	current, err := r.registry.ListRuns(r.entryPoint)
	if err != nil {
		return ReconcileResult{}, errorwrapper.WrapError(err, "failed to list registered runs")
	}

	desired := make(map[int]bool, len(plan.RunTimes))
	for _, run := range plan.RunTimes {
		desired[run.Hour] = true
	}

	result := ReconcileResult{Plan: plan}
	seen := make(map[int]bool)
	for _, run := range current {
		if desired[run.Hour] && !seen[run.Hour] {
			seen[run.Hour] = true
			result.Kept = append(result.Kept, run.Hour)
			continue
		}
		// Stale hour or duplicate registration for a kept hour.
		if err := r.registry.RemoveRun(run.ID); err != nil {
			return ReconcileResult{}, errorwrapper.WrapError(err, "failed to remove stale run")
		}
		result.Removed = append(result.Removed, run.Hour)
	}

	for _, run := range plan.RunTimes {
		if seen[run.Hour] {
			continue
		}
		if _, err := r.registry.RegisterDailyRun(r.entryPoint, run.Hour); err != nil {
			return ReconcileResult{}, errorwrapper.WrapError(err, "failed to register run")
		}
		result.Registered = append(result.Registered, run.Hour)
	}

	return result, nil
}
