package datastore

import (
	"database/sql"
	"fmt"
	"time"
)

// Cycle statuses recorded in cycle_history.
const (
	CycleStatusStarted   = "STARTED"
	CycleStatusCompleted = "COMPLETED"
	CycleStatusSkipped   = "SKIPPED"
	CycleStatusFailed    = "FAILED"
)

// RecordCycleStart inserts a new cycle_history record with status "STARTED"
// and returns the ID of the newly inserted row.
func (d *DB) RecordCycleStart(cycleID string, startTime time.Time) (int64, error) {
	if err := d.ensureSchema(); err != nil {
		return 0, err
	}

	query := `INSERT INTO cycle_history (cycle_id, start_time, status) VALUES (?, ?, ?)`
	result, err := d.db.Exec(query, cycleID, startTime, CycleStatusStarted)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cycle start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	d.logger.Debug().Int64("db_id", id).Str("cycle_id", cycleID).Msg("Recorded cycle start")
	return id, nil
}

// UpdateCycleCompletion updates an existing cycle_history record with its
// final outcome.
func (d *DB) UpdateCycleCompletion(dbCycleID int64, endTime time.Time, status, message string, changesFound, notificationsSent int) error {
	if err := d.ensureSchema(); err != nil {
		return err
	}

	query := `UPDATE cycle_history SET end_time = ?, status = ?, message = ?, changes_found = ?, notifications_sent = ? WHERE id = ?`
	_, err := d.db.Exec(query, endTime, status,
		sql.NullString{String: message, Valid: message != ""},
		changesFound, notificationsSent, dbCycleID)
	if err != nil {
		return fmt.Errorf("failed to update cycle completion for ID %d: %w", dbCycleID, err)
	}

	d.logger.Debug().Int64("db_id", dbCycleID).Str("status", status).Msg("Updated cycle completion")
	return nil
}

// GetLastCompletedCycleTime retrieves the start time of the most recent
// completed cycle, or sql.ErrNoRows when none exists.
func (d *DB) GetLastCompletedCycleTime() (*time.Time, error) {
	if err := d.ensureSchema(); err != nil {
		return nil, err
	}

	var startTime time.Time
	err := d.db.QueryRow(
		`SELECT start_time FROM cycle_history WHERE status = ? ORDER BY start_time DESC LIMIT 1`,
		CycleStatusCompleted,
	).Scan(&startTime)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last completed cycle time: %w", err)
	}
	return &startTime, nil
}
