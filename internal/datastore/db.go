package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Timestamp layouts used across log rows and date keys. Date keys are the
// first 10 bytes of a row timestamp, so prefix matching works on strings.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateKeyLayout   = "2006-01-02"
)

// DB wraps the SQL database connection backing the change log and the cycle
// history. The change_log schema is created lazily on first append.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger

	initOnce sync.Once
	initErr  error
}

// NewDB opens (or creates) the database at the given path.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	moduleLogger := logger.With().Str("module", "Datastore").Logger()

	if dir := filepath.Dir(dataSourceName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	moduleLogger.Debug().Str("db_path", dataSourceName).Msg("Datastore opened")
	return &DB{
		db:     dbInstance,
		logger: moduleLogger,
	}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// ensureSchema creates the tables on first use. The change log has no
// update or delete path anywhere in this package; it is append-only.
func (d *DB) ensureSchema() error {
	d.initOnce.Do(func() {
		query := `
		CREATE TABLE IF NOT EXISTS change_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			logged_at TEXT NOT NULL,
			change_type TEXT NOT NULL,
			name TEXT NOT NULL,
			file_id TEXT NOT NULL,
			url TEXT,
			folder_name TEXT,
			folder_id TEXT,
			owner TEXT,
			mime_type TEXT,
			notes TEXT
		);
		CREATE TABLE IF NOT EXISTS cycle_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id TEXT UNIQUE,
			start_time DATETIME NOT NULL,
			end_time DATETIME,
			status TEXT NOT NULL,
			message TEXT,
			changes_found INTEGER DEFAULT 0,
			notifications_sent INTEGER DEFAULT 0
		);
		`
		if _, err := d.db.Exec(query); err != nil {
			d.initErr = fmt.Errorf("failed to initialize datastore schema: %w", err)
			return
		}
		d.logger.Debug().Msg("Datastore schema ensured")
	})
	return d.initErr
}
