package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/drivewatch/internal/config"
	"github.com/aleister1102/drivewatch/internal/models"
	"github.com/aleister1102/drivewatch/internal/notifier/discord"
)

func changeTypeColor(changeType models.ChangeType) int {
	switch changeType {
	case models.ChangeTypeCreated:
		return ColorCreated
	case models.ChangeTypeDeleted:
		return ColorDeleted
	default:
		return ColorModified
	}
}

func changeTypeTitle(changeType models.ChangeType) string {
	switch changeType {
	case models.ChangeTypeCreated:
		return "📄 File Created"
	case models.ChangeTypeDeleted:
		return "🗑️ File Deleted"
	default:
		return "✏️ File Modified"
	}
}

// BuildFileChangePayload formats one detected change as a webhook payload
// carrying change metadata, folder context, a formatted size string, and a
// relative "time ago" string.
func BuildFileChangePayload(change models.FileChange, cfg config.NotificationConfig, now time.Time) discord.MessagePayload {
	embedBuilder := discord.NewEmbedBuilder().
		WithTitle(changeTypeTitle(change.ChangeType)).
		WithDescription(fmt.Sprintf("**%s**", truncateString(change.Name, 200))).
		WithColor(changeTypeColor(change.ChangeType)).
		WithTimestamp(change.DetectedAt).
		AddField("Folder", truncateString(folderLink(change.FolderName, change.FolderID), MaxFieldValueLength), true).
		AddField("Changed", formatTimeAgo(change.DetectedAt, now), true)

	if change.Size > 0 {
		embedBuilder.AddField("Size", formatFileSize(change.Size), true)
	}
	if change.Owner != "" {
		embedBuilder.AddField("Owner", change.Owner, true)
	}
	if change.MimeType != "" {
		embedBuilder.AddField("Type", change.MimeType, true)
	}
	if change.URL != "" {
		embedBuilder.WithURL(change.URL)
	}

	return basePayload(cfg).
		AddEmbed(embedBuilder.Build()).
		Build()
}

// BuildDailySummaryPayload formats a daily rollup.
func BuildDailySummaryPayload(summary *models.SummaryRecord, cfg config.NotificationConfig) discord.MessagePayload {
	embedBuilder := discord.NewEmbedBuilder().
		WithTitle(fmt.Sprintf("📊 Daily Summary — %s", summary.StartDate)).
		WithDescription(byTypeLine(summary)).
		WithColor(ColorSummary)

	addFolderFields(embedBuilder, summary)

	return basePayload(cfg).AddEmbed(embedBuilder.Build()).Build()
}

// BuildWeeklySummaryPayload formats a weekly rollup with its per-day
// breakdown and trend deltas.
func BuildWeeklySummaryPayload(summary *models.SummaryRecord, cfg config.NotificationConfig) discord.MessagePayload {
	embedBuilder := discord.NewEmbedBuilder().
		WithTitle(fmt.Sprintf("📈 Weekly Summary — %s to %s", summary.StartDate, summary.EndDate)).
		WithDescription(byTypeLine(summary)).
		WithColor(ColorSummary)

	if len(summary.ByDay) > 0 {
		var lines []string
		for _, day := range summary.ByDay {
			lines = append(lines, fmt.Sprintf("`%s` — %d changes", day.Date, day.Total))
		}
		embedBuilder.AddField("Per Day", strings.Join(lines, "\n"), false)
	}

	if summary.Trends != nil {
		trendValue := fmt.Sprintf("Total: %s vs. previous period (%d changes)",
			formatTrendPct(summary.Trends.TotalPct), summary.Trends.PreviousTotal)
		embedBuilder.AddField("Trend", trendValue, false)
	}

	addFolderFields(embedBuilder, summary)

	return basePayload(cfg).AddEmbed(embedBuilder.Build()).Build()
}

// BuildCycleFailurePayload formats a high-priority alert for a fatal cycle
// failure.
func BuildCycleFailurePayload(cycleID, message string, cfg config.NotificationConfig, now time.Time) discord.MessagePayload {
	embed := discord.NewEmbedBuilder().
		WithTitle("🚨 Monitoring Cycle Failed").
		WithDescription(truncateString(message, 2000)).
		WithColor(ColorAlert).
		WithTimestamp(now).
		AddField("Cycle", cycleID, true).
		Build()

	builder := basePayload(cfg).AddEmbed(embed)
	if mentions := buildMentions(cfg.MentionRoleIDs); mentions != "" {
		builder.WithContent(mentions)
	}
	return builder.Build()
}

func basePayload(cfg config.NotificationConfig) *discord.MessagePayloadBuilder {
	builder := discord.NewMessagePayloadBuilder()
	if cfg.Username != "" {
		builder.WithUsername(cfg.Username)
	}
	if cfg.AvatarURL != "" {
		builder.WithAvatarURL(cfg.AvatarURL)
	}
	return builder
}

func byTypeLine(summary *models.SummaryRecord) string {
	return fmt.Sprintf("**%d** changes — %d created, %d modified, %d deleted",
		summary.Total,
		summary.ByType[models.ChangeTypeCreated],
		summary.ByType[models.ChangeTypeModified],
		summary.ByType[models.ChangeTypeDeleted])
}

func addFolderFields(embedBuilder *discord.EmbedBuilder, summary *models.SummaryRecord) {
	if len(summary.ByFolder) == 0 {
		return
	}

	var lines []string
	for i, folder := range summary.ByFolder {
		if i >= MaxFolderFieldCount {
			lines = append(lines, fmt.Sprintf("... and %d more folders", len(summary.ByFolder)-i))
			break
		}
		lines = append(lines, fmt.Sprintf("%s — %d created, %d modified",
			folderLink(folder.FolderName, folder.FolderID), folder.Created, folder.Modified))
	}
	// Long folder names can push the joined value past the field limit,
	// which would fail embed validation and blank the whole summary.
	embedBuilder.AddField("Folders", truncateString(strings.Join(lines, "\n"), MaxFieldValueLength), false)
}

// folderLink renders a folder name deep-linked by its id.
func folderLink(name, id string) string {
	if name == "" {
		name = id
	}
	if id == "" {
		return name
	}
	return fmt.Sprintf("[%s](https://drive.google.com/drive/folders/%s)", name, id)
}
