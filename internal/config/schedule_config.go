package config

// Schedule modes select which of the two schedule representations applies.
const (
	ScheduleModeWindow = "window"
	ScheduleModeCount  = "count"
)

// ScheduleConfig holds administrator schedule intent. Window mode uses
// {StartHour, StopHour}; count mode uses {MaxRunsPerDay, StartHour}. The two
// representations are mutually exclusive, selected by Mode.
type ScheduleConfig struct {
	Mode      string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"required,oneof=window count"`
	StartHour int    `json:"start_hour,omitempty" yaml:"start_hour,omitempty" validate:"min=0,max=23"`
	StopHour  int    `json:"stop_hour,omitempty" yaml:"stop_hour,omitempty" validate:"min=0,max=24"`
	// Daily run ceiling; also the requested run count in count mode.
	MaxRunsPerDay int `json:"max_runs_per_day,omitempty" yaml:"max_runs_per_day,omitempty" validate:"min=1,max=24"`
}

// NewDefaultScheduleConfig creates default schedule configuration
func NewDefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Mode:          DefaultScheduleMode,
		StartHour:     DefaultStartHour,
		StopHour:      DefaultStopHour,
		MaxRunsPerDay: DefaultMaxRunsPerDay,
	}
}

// EffectiveStopHour returns the end of the active window. Window mode uses
// the configured stop hour directly; count mode derives it from the requested
// run count at one half-hour per run.
func (sc ScheduleConfig) EffectiveStopHour() float64 {
	if sc.Mode == ScheduleModeCount {
		return float64(sc.StartHour) + float64(sc.MaxRunsPerDay)*0.5
	}
	return float64(sc.StopHour)
}

// InsideWindow reports whether the given hour of day falls inside the active
// window. The stop hour is exclusive.
func (sc ScheduleConfig) InsideWindow(hour int) bool {
	return hour >= sc.StartHour && float64(hour) < sc.EffectiveStopHour()
}
