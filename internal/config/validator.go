package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Folder IDs are opaque API identifiers: URL-safe, no whitespace, and long
// enough to rule out obvious typos.
var folderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,}$`)

// ValidateConfig performs validation on the Config structure. Violating any
// invariant fails validation; callers must not use a Config that failed here.
func ValidateConfig(cfg *Config) error {
	validate := validator.New()

	// Register custom validation for folder ID format
	_ = validate.RegisterValidation("folderid", func(fl validator.FieldLevel) bool {
		return folderIDPattern.MatchString(fl.Field().String())
	})

	// Register custom validation for weekday names
	_ = validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := parseWeekday(fl.Field().String())
		return err == nil
	})

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var messages []string
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.StructNamespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				messages = append(messages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	return validateScheduleBounds(cfg.ScheduleConfig)
}

// validateScheduleBounds enforces the cross-field schedule invariants that
// struct tags cannot express.
func validateScheduleBounds(sc ScheduleConfig) error {
	switch sc.Mode {
	case ScheduleModeWindow:
		if sc.StopHour <= sc.StartHour {
			return fmt.Errorf("schedule validation failed: stop hour (%d) must be after start hour (%d)", sc.StopHour, sc.StartHour)
		}
	case ScheduleModeCount:
		if stop := sc.EffectiveStopHour(); stop > 24 {
			return fmt.Errorf("schedule validation failed: %d runs starting at hour %d would end at %.1f, past midnight", sc.MaxRunsPerDay, sc.StartHour, stop)
		}
	}
	return nil
}

// parseWeekday resolves a weekday name to time.Weekday.
func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %q", name)
}

// ParseWeekday is the exported form used by the summary publisher.
func ParseWeekday(name string) (time.Weekday, error) {
	return parseWeekday(name)
}
