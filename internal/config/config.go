package config

import (
	"slices"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
)

// Config is the immutable configuration snapshot for one deployment. It is
// loaded fresh at the start of each cycle, treated as read-only for the
// cycle's duration, and replaced wholesale in storage at cycle end or on
// explicit reconfiguration. Use the With* methods to derive updated copies.
type Config struct {
	MonitoringConfig   MonitoringConfig   `json:"monitoring_config,omitempty" yaml:"monitoring_config,omitempty"`
	ScheduleConfig     ScheduleConfig     `json:"schedule_config,omitempty" yaml:"schedule_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	// Administrator identities allowed to reconfigure the agent.
	AdminEmails []string  `json:"admin_emails,omitempty" yaml:"admin_emails,omitempty" validate:"omitempty,dive,email"`
	ScanState   ScanState `json:"scan_state,omitempty" yaml:"scan_state,omitempty"`
}

// StorageConfig defines where the sqlite database lives.
type StorageConfig struct {
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath: DefaultSQLiteDBPath,
	}
}

// NewDefaultConfig creates a configuration with all defaults applied. The
// result does not validate until a webhook URL is set.
func NewDefaultConfig() *Config {
	return &Config{
		MonitoringConfig:   NewDefaultMonitoringConfig(),
		ScheduleConfig:     NewDefaultScheduleConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		LogConfig:          NewDefaultLogConfig(),
		AdminEmails:        []string{},
		ScanState:          ScanState{},
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.MonitoringConfig.FolderIDs = slices.Clone(c.MonitoringConfig.FolderIDs)
	clone.NotificationConfig.MentionRoleIDs = slices.Clone(c.NotificationConfig.MentionRoleIDs)
	clone.AdminEmails = slices.Clone(c.AdminEmails)
	return &clone
}

// WithScanState derives a copy of the configuration carrying new scan state.
func (c *Config) WithScanState(state ScanState) *Config {
	clone := c.Clone()
	clone.ScanState = state
	return clone
}

// WithScheduleConfig derives a copy carrying a new schedule section. The copy
// is validated before it is returned; there is no invalid-but-usable Config.
func (c *Config) WithScheduleConfig(schedule ScheduleConfig) (*Config, error) {
	clone := c.Clone()
	clone.ScheduleConfig = schedule
	if err := ValidateConfig(clone); err != nil {
		return nil, errorwrapper.WrapError(err, "derived configuration is invalid")
	}
	return clone, nil
}
