package config

const (
	// Monitoring Defaults
	DefaultRelevanceThresholdMins = 60
	DefaultMaxFilesPerFolder      = 50
	DefaultInterFolderDelaySecs   = 2
	DefaultLookbackHours          = 24

	// Scheduling Defaults
	DefaultScheduleMode  = ScheduleModeWindow
	DefaultStartHour     = 8
	DefaultStopHour      = 16
	DefaultMaxRunsPerDay = 8
	MinRunsPerDay        = 1
	MaxRunsPerDay        = 24

	// Notification Defaults
	DefaultNotifierUsername     = "drivewatch"
	DefaultSummaryWeekday       = "Monday"
	DefaultRetryMaxAttempts     = 3
	DefaultRetryBaseDelaySecs   = 2
	DefaultBatchMessageDelaySec = 1

	// Storage Defaults
	DefaultSQLiteDBPath = "database/drivewatch.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
