package config

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
)

// Store is the persistent configuration store the core depends on. The full
// Config is loaded at cycle start and saved back at cycle end or on explicit
// reconfiguration; scoped values cover single named properties.
type Store interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

// The whole configuration snapshot lives under one property key.
const configPropertyKey = "config"

// PropertyStore is a sqlite-backed key/value implementation of Store. The
// configuration snapshot is serialized to JSON under a single key.
type PropertyStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewPropertyStore opens (or creates) the property database at the given path.
func NewPropertyStore(dataSourceName string, logger zerolog.Logger) (*PropertyStore, error) {
	moduleLogger := logger.With().Str("module", "PropertyStore").Logger()

	if dir := filepath.Dir(dataSourceName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create property store directory %s: %w", dir, err)
		}
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	store := &PropertyStore{
		db:     dbInstance,
		logger: moduleLogger,
	}

	if err := store.initSchema(); err != nil {
		_ = dbInstance.Close()
		return nil, fmt.Errorf("failed to initialize property store schema: %w", err)
	}

	moduleLogger.Debug().Str("db_path", dataSourceName).Msg("Property store initialized")
	return store, nil
}

// Close closes the database connection.
func (ps *PropertyStore) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func (ps *PropertyStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := ps.db.Exec(query)
	return err
}

// Load reads and validates the stored configuration snapshot.
func (ps *PropertyStore) Load() (*Config, error) {
	raw, err := ps.GetValue(configPropertyKey)
	if err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	if err := json.Unmarshal([]byte(raw), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save validates the configuration and replaces the stored snapshot. An
// invalid configuration is never persisted.
func (ps *PropertyStore) Save(cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return ps.SetValue(configPropertyKey, string(raw))
}

// GetValue retrieves a single named property.
func (ps *PropertyStore) GetValue(key string) (string, error) {
	var value string
	err := ps.db.QueryRow(`SELECT value FROM properties WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("property %q: %w", key, errorwrapper.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query property %q: %w", key, err)
	}
	return value, nil
}

// SetValue stores a single named property, replacing any previous value.
func (ps *PropertyStore) SetValue(key, value string) error {
	query := `INSERT INTO properties (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := ps.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set property %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes a single named property. Deleting a missing key is not
// an error.
func (ps *PropertyStore) DeleteValue(key string) error {
	if _, err := ps.db.Exec(`DELETE FROM properties WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete property %q: %w", key, err)
	}
	return nil
}

// Bootstrap seeds the store with the given configuration when no snapshot is
// stored yet. An existing snapshot is left untouched.
func (ps *PropertyStore) Bootstrap(cfg *Config) error {
	_, err := ps.GetValue(configPropertyKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errorwrapper.ErrNotFound) {
		return err
	}
	ps.logger.Info().Msg("No stored configuration found, seeding property store")
	return ps.Save(cfg)
}
