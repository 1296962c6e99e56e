package reporter

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/datastore"
	"github.com/aleister1102/drivewatch/internal/httpclient"
	"github.com/aleister1102/drivewatch/internal/models"
	"github.com/aleister1102/drivewatch/internal/notifier"
)

type capturingTransport struct {
	urls   []string
	bodies []string
}

func (ct *capturingTransport) Post(ctx context.Context, url string, body []byte) (int, error) {
	ct.urls = append(ct.urls, url)
	ct.bodies = append(ct.bodies, string(body))
	return 204, nil
}

func summaryTestConfig() config.NotificationConfig {
	cfg := config.NewDefaultNotificationConfig()
	cfg.WebhookURL = "https://discord.com/api/webhooks/123/abc"
	cfg.SummaryEnabled = true
	return cfg
}

func newTestPublisher(t *testing.T, now time.Time) (*SummaryPublisher, *capturingTransport, *datastore.DB) {
	t.Helper()

	db, err := datastore.NewDB(filepath.Join(t.TempDir(), "drivewatch.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	transport := &capturingTransport{}
	client := notifier.NewWebhookClient(transport, httpclient.RetryPolicy{MaxAttempts: 1}, zerolog.Nop())
	helper := notifier.NewNotificationHelper(client, zerolog.Nop())

	publisher := NewSummaryPublisher(db, helper, zerolog.Nop())
	publisher.clock = func() time.Time { return now }
	return publisher, transport, db
}

func logTestChange(t *testing.T, db *datastore.DB, changeType models.ChangeType, at time.Time) {
	t.Helper()
	change, err := models.NewFileChange("file-"+at.Format("150405.000"), "report.pdf", changeType, at)
	require.NoError(t, err)
	require.NoError(t, db.LogChange(change.WithFolder("folder-alpha-001", "Reports")))
}

func TestPublishDailyDefaultsToYesterday(t *testing.T) {
	now := time.Date(2025, 10, 28, 9, 0, 0, 0, time.UTC)
	publisher, transport, db := newTestPublisher(t, now)

	logTestChange(t, db, models.ChangeTypeCreated, now.AddDate(0, 0, -1))
	logTestChange(t, db, models.ChangeTypeModified, now.AddDate(0, 0, -1).Add(time.Hour))
	logTestChange(t, db, models.ChangeTypeCreated, now) // today, out of range

	summary, err := publisher.PublishDaily(context.Background(), "", summaryTestConfig())
	require.NoError(t, err)

	assert.Equal(t, "2025-10-27", summary.StartDate)
	assert.Equal(t, 2, summary.Total)
	require.Len(t, transport.bodies, 1)
	assert.Contains(t, transport.bodies[0], "Daily")
}

func TestPublishDailyDisabledSendsNothing(t *testing.T) {
	now := time.Date(2025, 10, 28, 9, 0, 0, 0, time.UTC)
	publisher, transport, _ := newTestPublisher(t, now)

	cfg := summaryTestConfig()
	cfg.SummaryEnabled = false

	summary, err := publisher.PublishDaily(context.Background(), "", cfg)
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Empty(t, transport.bodies)
}

func TestPublishWeeklyCoversSevenDaysEndingYesterday(t *testing.T) {
	now := time.Date(2025, 10, 28, 9, 0, 0, 0, time.UTC)
	publisher, transport, db := newTestPublisher(t, now)

	for day := 1; day <= 7; day++ {
		logTestChange(t, db, models.ChangeTypeModified, now.AddDate(0, 0, -day))
	}
	logTestChange(t, db, models.ChangeTypeModified, now.AddDate(0, 0, -8)) // prior week

	summary, err := publisher.PublishWeekly(context.Background(), summaryTestConfig())
	require.NoError(t, err)

	assert.Equal(t, "2025-10-21", summary.StartDate)
	assert.Equal(t, "2025-10-27", summary.EndDate)
	assert.Equal(t, 7, summary.Total)
	require.NotNil(t, summary.Trends)
	assert.Equal(t, 1, summary.Trends.PreviousTotal)
	require.Len(t, transport.urls, 1)
}

func TestPublishWeeklyUsesSummaryWebhookWhenSet(t *testing.T) {
	now := time.Date(2025, 10, 28, 9, 0, 0, 0, time.UTC)
	publisher, transport, _ := newTestPublisher(t, now)

	cfg := summaryTestConfig()
	cfg.SummaryWebhookURL = "https://discord.com/api/webhooks/456/def"

	_, err := publisher.PublishWeekly(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, transport.urls, 1)
	assert.True(t, strings.HasSuffix(transport.urls[0], "/456/def"))
}

func TestDueWeekly(t *testing.T) {
	monday := time.Date(2025, 10, 27, 9, 0, 0, 0, time.UTC)
	publisher, _, _ := newTestPublisher(t, monday)

	cfg := summaryTestConfig()
	cfg.SummaryWeekday = "Monday"
	assert.True(t, publisher.DueWeekly(cfg))

	cfg.SummaryWeekday = "Friday"
	assert.False(t, publisher.DueWeekly(cfg))

	cfg.SummaryEnabled = false
	cfg.SummaryWeekday = "Monday"
	assert.False(t, publisher.DueWeekly(cfg))
}
