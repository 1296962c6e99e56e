package models

import (
	"time"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
)

// ChangeType classifies a detected file change.
type ChangeType string

const (
	ChangeTypeCreated  ChangeType = "created"
	ChangeTypeModified ChangeType = "modified"
	ChangeTypeDeleted  ChangeType = "deleted"
)

// IsValid reports whether the change type is one of the known values.
func (ct ChangeType) IsValid() bool {
	switch ct {
	case ChangeTypeCreated, ChangeTypeModified, ChangeTypeDeleted:
		return true
	default:
		return false
	}
}

// ParseChangeType converts a string to a ChangeType, failing on unknown values.
func ParseChangeType(s string) (ChangeType, error) {
	ct := ChangeType(s)
	if !ct.IsValid() {
		return "", errorwrapper.NewValidationError("change_type", s, "must be one of created, modified, deleted")
	}
	return ct, nil
}

// FileChange is an immutable record of one detected change. It is constructed
// once per qualifying file per cycle and serialized to a single log row; rows
// are never updated or deleted.
type FileChange struct {
	FileID     string
	Name       string
	URL        string
	FolderID   string
	FolderName string
	ChangeType ChangeType
	DetectedAt time.Time
	Owner      string
	Size       int64
	MimeType   string
	Notes      string
}

// NewFileChange validates and constructs a FileChange record.
func NewFileChange(fileID, name string, changeType ChangeType, detectedAt time.Time) (FileChange, error) {
	if fileID == "" {
		return FileChange{}, errorwrapper.NewValidationError("file_id", fileID, "file ID is required")
	}
	if name == "" {
		return FileChange{}, errorwrapper.NewValidationError("name", name, "file name is required")
	}
	if !changeType.IsValid() {
		return FileChange{}, errorwrapper.NewValidationError("change_type", string(changeType), "must be one of created, modified, deleted")
	}
	if detectedAt.IsZero() {
		return FileChange{}, errorwrapper.NewValidationError("detected_at", detectedAt, "detection timestamp is required")
	}

	return FileChange{
		FileID:     fileID,
		Name:       name,
		ChangeType: changeType,
		DetectedAt: detectedAt,
	}, nil
}

// WithFolder returns a copy of the change annotated with folder context.
func (fc FileChange) WithFolder(folderID, folderName string) FileChange {
	fc.FolderID = folderID
	fc.FolderName = folderName
	return fc
}

// WithDetails returns a copy of the change annotated with file metadata.
func (fc FileChange) WithDetails(url, owner, mimeType string, size int64) FileChange {
	fc.URL = url
	fc.Owner = owner
	fc.MimeType = mimeType
	fc.Size = size
	return fc
}

// WithNotes returns a copy of the change with a free-form note attached.
func (fc FileChange) WithNotes(notes string) FileChange {
	fc.Notes = notes
	return fc
}
