package config

// MonitoringConfig defines which folders are watched and how each scan cycle
// is bounded.
type MonitoringConfig struct {
	// Folder IDs to watch; each must pass a minimal format check.
	FolderIDs []string `json:"folder_ids,omitempty" yaml:"folder_ids,omitempty" validate:"omitempty,dive,folderid"`
	// A file counts as changed when its modification age is within this many minutes.
	RelevanceThresholdMins int `json:"relevance_threshold_mins,omitempty" yaml:"relevance_threshold_mins,omitempty" validate:"min=1,max=1440"`
	// Maximum files requested per folder per cycle.
	MaxFilesPerFolder int `json:"max_files_per_folder,omitempty" yaml:"max_files_per_folder,omitempty" validate:"min=1,max=1000"`
	// Delay between folder scans, in seconds (external rate-limit courtesy).
	InterFolderDelaySecs int `json:"inter_folder_delay_secs,omitempty" yaml:"inter_folder_delay_secs,omitempty" validate:"min=0,max=300"`
	// Lookback window in hours, used only when no watermark exists yet.
	LookbackHours int `json:"lookback_hours,omitempty" yaml:"lookback_hours,omitempty" validate:"min=1,max=720"`
}

// NewDefaultMonitoringConfig creates default monitoring configuration
func NewDefaultMonitoringConfig() MonitoringConfig {
	return MonitoringConfig{
		FolderIDs:              []string{},
		RelevanceThresholdMins: DefaultRelevanceThresholdMins,
		MaxFilesPerFolder:      DefaultMaxFilesPerFolder,
		InterFolderDelaySecs:   DefaultInterFolderDelaySecs,
		LookbackHours:          DefaultLookbackHours,
	}
}
