package monitor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/drive"
	"github.com/aleister1102/drivewatch/internal/models"
)

// ChangeClassifier decides which change records a file's metadata produces.
type ChangeClassifier struct {
	logger             zerolog.Logger
	relevanceThreshold time.Duration
}

// NewChangeClassifier creates a classifier with the given relevance
// threshold.
func NewChangeClassifier(relevanceThreshold time.Duration, logger zerolog.Logger) *ChangeClassifier {
	return &ChangeClassifier{
		logger:             logger.With().Str("module", "ChangeClassifier").Logger(),
		relevanceThreshold: relevanceThreshold,
	}
}

// Classify maps one file's metadata to zero or more change records. A file
// modified within the relevance threshold yields a "modified" record; a file
// whose creation also falls after the watermark additionally yields a
// "created" record. One file can therefore produce both in a single cycle.
func (cc *ChangeClassifier) Classify(file drive.FileMetadata, since, now time.Time) []models.FileChange {
	var changes []models.FileChange

	if now.Sub(file.LastModified) <= cc.relevanceThreshold {
		change, err := models.NewFileChange(file.ID, file.Name, models.ChangeTypeModified, now)
		if err != nil {
			cc.logger.Warn().Err(err).Str("file_id", file.ID).Msg("Skipping malformed modified record")
		} else {
			changes = append(changes, change.WithDetails(file.WebViewLink, file.Owner, file.MimeType, file.Size))
		}
	}

	if file.CreatedDate.After(since) && file.LastModified.After(since) {
		change, err := models.NewFileChange(file.ID, file.Name, models.ChangeTypeCreated, now)
		if err != nil {
			cc.logger.Warn().Err(err).Str("file_id", file.ID).Msg("Skipping malformed created record")
		} else {
			changes = append(changes, change.WithDetails(file.WebViewLink, file.Owner, file.MimeType, file.Size))
		}
	}

	return changes
}
