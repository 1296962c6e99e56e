package config

// NotificationConfig defines configuration for webhook notifications
type NotificationConfig struct {
	// Webhook target for per-change notifications; required.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"required,url"`
	// Webhook target for daily/weekly summaries; falls back to WebhookURL when empty.
	SummaryWebhookURL string   `json:"summary_webhook_url,omitempty" yaml:"summary_webhook_url,omitempty" validate:"omitempty,url"`
	SummaryEnabled    bool     `json:"summary_enabled" yaml:"summary_enabled"`
	SummaryWeekday    string   `json:"summary_weekday,omitempty" yaml:"summary_weekday,omitempty" validate:"omitempty,weekday"`
	MentionRoleIDs    []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	Username          string   `json:"username,omitempty" yaml:"username,omitempty"`
	AvatarURL         string   `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty" validate:"omitempty,url"`
	NotifyOnFailure   bool     `json:"notify_on_failure" yaml:"notify_on_failure"`
	RetryConfig       RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// SummaryTarget returns the webhook URL summaries should go to.
func (nc NotificationConfig) SummaryTarget() string {
	if nc.SummaryWebhookURL != "" {
		return nc.SummaryWebhookURL
	}
	return nc.WebhookURL
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		WebhookURL:      "",
		SummaryEnabled:  true,
		SummaryWeekday:  DefaultSummaryWeekday,
		MentionRoleIDs:  []string{},
		Username:        DefaultNotifierUsername,
		NotifyOnFailure: true,
		RetryConfig:     NewDefaultRetryConfig(),
	}
}

// RetryConfig defines the bounded retry policy for webhook delivery. Backoff
// grows linearly with the attempt number.
type RetryConfig struct {
	MaxAttempts   int `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"min=1,max=10"`
	BaseDelaySecs int `json:"base_delay_secs,omitempty" yaml:"base_delay_secs,omitempty" validate:"min=1,max=300"`
	// Delay between messages of a batch send, in seconds.
	BatchMessageDelaySecs int `json:"batch_message_delay_secs,omitempty" yaml:"batch_message_delay_secs,omitempty" validate:"min=0,max=60"`
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:           DefaultRetryMaxAttempts,
		BaseDelaySecs:         DefaultRetryBaseDelaySecs,
		BatchMessageDelaySecs: DefaultBatchMessageDelaySec,
	}
}
