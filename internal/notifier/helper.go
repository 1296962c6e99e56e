package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/httpclient"
	"github.com/aleister1102/drivewatch/internal/models"
	"github.com/aleister1102/drivewatch/internal/notifier/discord"
)

// NotificationHelper builds and dispatches the application's notifications
// through a webhook client. All sends take the notification config as input
// so a helper instance survives configuration reloads.
type NotificationHelper struct {
	logger zerolog.Logger
	client *WebhookClient
	clock  func() time.Time
}

// NewNotificationHelper creates a notification helper over the given client.
func NewNotificationHelper(client *WebhookClient, logger zerolog.Logger) *NotificationHelper {
	return &NotificationHelper{
		logger: logger.With().Str("module", "NotificationHelper").Logger(),
		client: client,
		clock:  time.Now,
	}
}

// NewNotificationHelperFromConfig wires a helper with the production
// transport and the retry policy from configuration.
func NewNotificationHelperFromConfig(cfg config.RetryConfig, logger zerolog.Logger) *NotificationHelper {
	policy := httpclient.NewRetryPolicy(cfg.MaxAttempts, time.Duration(cfg.BaseDelaySecs)*time.Second)
	client := NewWebhookClient(NewHTTPTransport(nil), policy, logger)
	return NewNotificationHelper(client, logger)
}

// NotifyFileChange sends one per-change notification.
func (nh *NotificationHelper) NotifyFileChange(ctx context.Context, change models.FileChange, cfg config.NotificationConfig) error {
	payload := BuildFileChangePayload(change, cfg, nh.clock())
	return nh.client.Send(ctx, cfg.WebhookURL, payload)
}

// NotifyCycleFailure sends a best-effort high-priority alert. Its own failure
// is logged and swallowed so alerting never masks the original error.
func (nh *NotificationHelper) NotifyCycleFailure(ctx context.Context, cycleID, message string, cfg config.NotificationConfig) {
	if !cfg.NotifyOnFailure {
		return
	}
	payload := BuildCycleFailurePayload(cycleID, message, cfg, nh.clock())
	if err := nh.client.Send(ctx, cfg.WebhookURL, payload); err != nil {
		nh.logger.Error().Err(err).Str("cycle_id", cycleID).Msg("Failed to deliver cycle failure alert")
	}
}

// NotifySummary sends a daily or weekly summary to the summary target.
func (nh *NotificationHelper) NotifySummary(ctx context.Context, summary *models.SummaryRecord, cfg config.NotificationConfig) error {
	var payload discord.MessagePayload
	if summary.StartDate == summary.EndDate {
		payload = BuildDailySummaryPayload(summary, cfg)
	} else {
		payload = BuildWeeklySummaryPayload(summary, cfg)
	}
	return nh.client.Send(ctx, cfg.SummaryTarget(), payload)
}

// SendBatch dispatches payloads sequentially with a fixed inter-message delay
// as rate-limit courtesy. Individual failures do not stop the batch; the
// returned vector reports per-item success.
func (nh *NotificationHelper) SendBatch(ctx context.Context, webhookURL string, payloads []discord.MessagePayload, messageDelay time.Duration) []bool {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if messageDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(messageDelay), 1)
	}

	results := make([]bool, len(payloads))
	for i, payload := range payloads {
		if err := limiter.Wait(ctx); err != nil {
			nh.logger.Warn().Err(err).Int("remaining", len(payloads)-i).Msg("Batch dispatch canceled")
			return results
		}
		if err := nh.client.Send(ctx, webhookURL, payload); err != nil {
			nh.logger.Error().Err(err).Int("item", i).Msg("Batch item delivery failed")
			continue
		}
		results[i] = true
	}
	return results
}
