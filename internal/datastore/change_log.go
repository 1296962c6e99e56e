package datastore

import (
	"fmt"

	"github.com/aleister1102/drivewatch/internal/models"
)

// LogChange appends one change record to the log. The row layout is fixed at
// ten fields: timestamp, change type, name, id, url, parent folder name,
// parent folder id, owner, mime type, notes. Rows are a permanent audit
// trail; there is no update or delete operation.
func (d *DB) LogChange(record models.FileChange) error {
	if err := d.ensureSchema(); err != nil {
		return err
	}

	query := `INSERT INTO change_log
		(logged_at, change_type, name, file_id, url, folder_name, folder_id, owner, mime_type, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := d.db.Exec(query,
		record.DetectedAt.Format(TimestampLayout),
		string(record.ChangeType),
		record.Name,
		record.FileID,
		record.URL,
		record.FolderName,
		record.FolderID,
		record.Owner,
		record.MimeType,
		record.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to append change log row: %w", err)
	}

	d.logger.Debug().
		Str("file_id", record.FileID).
		Str("change_type", string(record.ChangeType)).
		Msg("Appended change log row")
	return nil
}

// logRow is the scan target for one change_log row.
type logRow struct {
	LoggedAt   string
	ChangeType string
	Name       string
	FileID     string
	URL        string
	FolderName string
	FolderID   string
	Owner      string
	MimeType   string
	Notes      string
}

// readAllRows scans the full log in insertion order. Aggregation is a full
// scan on purpose: the log stays small relative to polling cadence, and a
// secondary index would complicate the append path for no measurable gain.
func (d *DB) readAllRows() ([]logRow, error) {
	if err := d.ensureSchema(); err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`SELECT logged_at, change_type, name, file_id, url,
		folder_name, folder_id, owner, mime_type, notes FROM change_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan change log: %w", err)
	}
	defer rows.Close()

	var result []logRow
	for rows.Next() {
		var row logRow
		if err := rows.Scan(&row.LoggedAt, &row.ChangeType, &row.Name, &row.FileID, &row.URL,
			&row.FolderName, &row.FolderID, &row.Owner, &row.MimeType, &row.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan change log row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
