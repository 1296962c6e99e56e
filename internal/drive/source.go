package drive

import (
	"context"
	"time"
)

// FolderInfo identifies one watched folder.
type FolderInfo struct {
	ID   string
	Name string
}

// FileMetadata is the metadata subset the engine classifies on. Content is
// never fetched.
type FileMetadata struct {
	ID           string
	Name         string
	Size         int64
	MimeType     string
	LastModified time.Time
	CreatedDate  time.Time
	Owner        string
	WebViewLink  string
}

// ListOptions bounds one folder listing.
type ListOptions struct {
	// Only files modified strictly after this instant are returned.
	ModifiedSince time.Time
	// Maximum number of files to return; zero means the source's default.
	Limit int
}

// FileSource lists files in cloud-storage folders. Implementations are
// expected to honor ListOptions server-side where the backing API allows it.
type FileSource interface {
	GetFolder(ctx context.Context, folderID string) (FolderInfo, error)
	ListFiles(ctx context.Context, folderID string, opts ListOptions) ([]FileMetadata, error)
}
