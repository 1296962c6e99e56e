package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/models"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{int64(3.5 * 1024 * 1024 * 1024), "3.5 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFileSize(tt.bytes))
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-time.Minute), "1 minute ago"},
		{now.Add(-45 * time.Minute), "45 minutes ago"},
		{now.Add(-90 * time.Minute), "1 hour ago"},
		{now.Add(-26 * time.Hour), "1 day ago"},
		{now.Add(-72 * time.Hour), "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTimeAgo(tt.t, now))
	}
}

func TestBuildFileChangePayload(t *testing.T) {
	now := time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC)
	change, err := models.NewFileChange("file-1", "report.pdf", models.ChangeTypeModified, now.Add(-10*time.Minute))
	require.NoError(t, err)
	change = change.
		WithFolder("folder-1", "Reports").
		WithDetails("https://drive.example.com/file-1", "alice@example.com", "application/pdf", 2048)

	cfg := config.NewDefaultNotificationConfig()
	payload := BuildFileChangePayload(change, cfg, now)

	require.Len(t, payload.Embeds, 1)
	embed := payload.Embeds[0]
	assert.Equal(t, "✏️ File Modified", embed.Title)
	assert.Equal(t, ColorModified, embed.Color)
	assert.Equal(t, config.DefaultNotifierUsername, payload.Username)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Contains(t, fields["Folder"], "folder-1")
	assert.Equal(t, "10 minutes ago", fields["Changed"])
	assert.Equal(t, "2.0 KB", fields["Size"])
	assert.Equal(t, "alice@example.com", fields["Owner"])
}

func TestBuildWeeklySummaryPayload(t *testing.T) {
	summary := &models.SummaryRecord{
		StartDate: "2025-10-20",
		EndDate:   "2025-10-26",
		Total:     3,
		ByType: map[models.ChangeType]int{
			models.ChangeTypeCreated:  1,
			models.ChangeTypeModified: 2,
		},
		ByDay: []models.DayActivity{
			{Date: "2025-10-20", Total: 1, Created: 1},
			{Date: "2025-10-21"},
		},
		Trends: &models.SummaryTrends{PreviousTotal: 2, TotalPct: 50},
	}

	payload := BuildWeeklySummaryPayload(summary, config.NewDefaultNotificationConfig())
	require.Len(t, payload.Embeds, 1)

	embed := payload.Embeds[0]
	assert.Contains(t, embed.Title, "Weekly Summary")

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Contains(t, fields["Trend"], "+50%")
	assert.Contains(t, fields["Per Day"], "2025-10-21")
}

func TestBuildWeeklySummaryPayload_LongFolderNamesStayWithinFieldLimit(t *testing.T) {
	folders := make([]models.FolderActivity, MaxFolderFieldCount)
	for i := range folders {
		folders[i] = models.FolderActivity{
			FolderID:   "folder-00000000000000000000",
			FolderName: strings.Repeat("Quarterly Reports Archive ", 4),
			Created:    1,
		}
	}
	summary := &models.SummaryRecord{
		StartDate: "2025-10-20",
		EndDate:   "2025-10-26",
		Total:     10,
		ByType:    map[models.ChangeType]int{models.ChangeTypeCreated: 10},
		ByFolder:  folders,
	}

	payload := BuildWeeklySummaryPayload(summary, config.NewDefaultNotificationConfig())
	require.Len(t, payload.Embeds, 1)

	embed := payload.Embeds[0]
	assert.Contains(t, embed.Title, "Weekly Summary")
	require.NotEmpty(t, embed.Fields)
	for _, f := range embed.Fields {
		assert.LessOrEqual(t, len(f.Value), MaxFieldValueLength)
	}
}

func TestBuildCycleFailurePayload_Mentions(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	cfg.MentionRoleIDs = []string{"1234"}

	payload := BuildCycleFailurePayload("cycle-1", "watermark persistence failed", cfg, time.Now())
	assert.Equal(t, "<@&1234>", payload.Content)
	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, ColorAlert, payload.Embeds[0].Color)
}
