package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/config"
)

func TestNew_DefaultConfig(t *testing.T) {
	log, err := New(config.NewDefaultLogConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %s", log.GetLevel())
	}
}

func TestNew_ParsesLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "debug"

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if log.GetLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", log.GetLevel())
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "verbose"

	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown log level")
	}
}
