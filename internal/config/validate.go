package config

import (
	"github.com/mrz1836/cadence/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Goal targets must not be negative
//   - Calendar timezone must be empty or a known IANA zone
//   - Storage lock timeout must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateGoalsConfig(&cfg.Goals); err != nil {
		return err
	}

	if err := validateCalendarConfig(&cfg.Calendar); err != nil {
		return err
	}

	return validateStorageConfig(&cfg.Storage)
}

// validateGoalsConfig checks the default daily goals.
func validateGoalsConfig(cfg *GoalsConfig) error {
	if cfg.Tasks < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidGoals,
			"goals.tasks cannot be negative, got %d", cfg.Tasks)
	}
	if cfg.Habits < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidGoals,
			"goals.habits cannot be negative, got %d", cfg.Habits)
	}
	if cfg.FocusMinutes < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidGoals,
			"goals.focus_minutes cannot be negative, got %d", cfg.FocusMinutes)
	}
	return nil
}

// validateCalendarConfig checks the timezone resolves.
func validateCalendarConfig(cfg *CalendarConfig) error {
	if _, err := cfg.Location(); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidCalendar,
			"calendar.timezone %q: %v", cfg.Timezone, err)
	}
	return nil
}

// validateStorageConfig checks storage-specific values.
func validateStorageConfig(cfg *StorageConfig) error {
	if cfg.LockTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidStorage,
			"storage.lock_timeout must be positive, got %s", cfg.LockTimeout)
	}
	return nil
}
