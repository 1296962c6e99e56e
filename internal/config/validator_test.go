package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.NotificationConfig.WebhookURL = "https://discord.com/api/webhooks/123/abc"
	cfg.MonitoringConfig.FolderIDs = []string{"1AbCdEfGhIjKlMnOp"}
	return cfg
}

func TestValidateConfig_Valid(t *testing.T) {
	require.NoError(t, ValidateConfig(validTestConfig()))
}

func TestValidateConfig_RequiresWebhookURL(t *testing.T) {
	cfg := validTestConfig()
	cfg.NotificationConfig.WebhookURL = ""
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_WindowModeRequiresStartBeforeStop(t *testing.T) {
	cfg := validTestConfig()
	cfg.ScheduleConfig = ScheduleConfig{
		Mode:          ScheduleModeWindow,
		StartHour:     17,
		StopHour:      9,
		MaxRunsPerDay: 8,
	}
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_CountModePastMidnight(t *testing.T) {
	cfg := validTestConfig()
	cfg.ScheduleConfig = ScheduleConfig{
		Mode:          ScheduleModeCount,
		StartHour:     22,
		MaxRunsPerDay: 8, // 22 + 8*0.5 = 26 > 24
	}
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_FolderIDFormat(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		wantErr  bool
	}{
		{"typical drive ID", "1y8jMN0x3vB_wq7rLkCd9e", false},
		{"underscores and dashes", "abc_DEF-123456", false},
		{"too short", "abc", true},
		{"embedded whitespace", "1y8jMN0x 3vB", true},
		{"illegal characters", "folder/../../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.MonitoringConfig.FolderIDs = []string{tt.folderID}
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateConfig_MaxRunsPerDayBounds(t *testing.T) {
	cfg := validTestConfig()
	cfg.ScheduleConfig.MaxRunsPerDay = 0
	assert.Error(t, ValidateConfig(cfg))

	cfg = validTestConfig()
	cfg.ScheduleConfig.MaxRunsPerDay = 25
	assert.Error(t, ValidateConfig(cfg))
}

func TestScheduleConfig_InsideWindow(t *testing.T) {
	window := ScheduleConfig{Mode: ScheduleModeWindow, StartHour: 8, StopHour: 16, MaxRunsPerDay: 8}
	assert.False(t, window.InsideWindow(7))
	assert.True(t, window.InsideWindow(8))
	assert.True(t, window.InsideWindow(15))
	assert.False(t, window.InsideWindow(16))

	count := ScheduleConfig{Mode: ScheduleModeCount, StartHour: 19, MaxRunsPerDay: 8}
	assert.Equal(t, 23.0, count.EffectiveStopHour())
	assert.True(t, count.InsideWindow(22))
	assert.False(t, count.InsideWindow(23))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}
