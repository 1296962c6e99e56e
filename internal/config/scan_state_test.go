package config

import (
	"testing"
	"time"
)

func TestScanState_RunsToday(t *testing.T) {
	now := time.Date(2025, 10, 27, 10, 0, 0, 0, time.UTC)

	state := ScanState{LastRunDate: "2025-10-27", LastRunCount: 3}
	if got := state.RunsToday(now); got != 3 {
		t.Errorf("expected 3 runs today, got %d", got)
	}

	// Counter from a previous day does not carry over.
	stale := ScanState{LastRunDate: "2025-10-26", LastRunCount: 8}
	if got := stale.RunsToday(now); got != 0 {
		t.Errorf("expected counter reset on new day, got %d", got)
	}
}

func TestScanState_AfterCycle(t *testing.T) {
	now := time.Date(2025, 10, 27, 10, 0, 0, 0, time.UTC)

	state := ScanState{
		LastCheckTime: now.Add(-time.Hour),
		LastRunDate:   "2025-10-27",
		LastRunCount:  2,
	}

	next := state.AfterCycle(now, 5)
	if !next.LastCheckTime.Equal(now) {
		t.Errorf("watermark not advanced: %v", next.LastCheckTime)
	}
	if next.LastRunCount != 3 {
		t.Errorf("expected run count 3, got %d", next.LastRunCount)
	}
	if next.LastChangesFound != 5 {
		t.Errorf("expected 5 changes recorded, got %d", next.LastChangesFound)
	}

	// Deriving must not touch the original.
	if state.LastRunCount != 2 {
		t.Errorf("original scan state mutated: %+v", state)
	}
}

func TestConfig_WithScanStateDerivesCopy(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.MonitoringConfig.FolderIDs = []string{"folder-a-12345"}

	now := time.Date(2025, 10, 27, 10, 0, 0, 0, time.UTC)
	updated := cfg.WithScanState(cfg.ScanState.AfterCycle(now, 1))

	if cfg.ScanState.LastRunCount != 0 {
		t.Errorf("original config mutated: %+v", cfg.ScanState)
	}
	if updated.ScanState.LastRunCount != 1 {
		t.Errorf("derived config missing new state: %+v", updated.ScanState)
	}

	// Slices must be deep-copied.
	updated.MonitoringConfig.FolderIDs[0] = "changed"
	if cfg.MonitoringConfig.FolderIDs[0] != "folder-a-12345" {
		t.Error("folder ID slice shared between original and derived config")
	}
}
