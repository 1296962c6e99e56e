package logger

import (
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/config"
)

// New creates a zerolog logger from the log configuration. Console output is
// always enabled; file output is added when a log file path is configured,
// rotated by lumberjack.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{newConsoleWriter(cfg.LogFormat)}
	if cfg.LogFile != "" {
		writers = append(writers, newFileWriter(cfg))
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	instance := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)

	// Route the standard log package through zerolog so library output is
	// captured in the same stream.
	stdlog.SetOutput(instance)
	stdlog.SetFlags(0)

	return instance, nil
}

// parseLevel parses a string log level to zerolog.Level.
func parseLevel(levelStr string) (zerolog.Level, error) {
	if levelStr == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return level, nil
}

// newConsoleWriter creates the stderr writer for the configured format.
func newConsoleWriter(format string) io.Writer {
	if strings.ToLower(format) == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
}

// newFileWriter creates a size-rotated file writer.
func newFileWriter(cfg config.LogConfig) io.Writer {
	maxSize := cfg.MaxLogSizeMB
	if maxSize <= 0 {
		maxSize = config.DefaultMaxLogSizeMB
	}
	maxBackups := cfg.MaxLogBackups
	if maxBackups <= 0 {
		maxBackups = config.DefaultMaxLogBackups
	}
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}
}
