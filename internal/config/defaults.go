package config

import "github.com/mrz1836/cadence/internal/constants"

// DefaultConfig returns a new Config with default values.
// These defaults are the base layer that config files and environment
// variables override.
func DefaultConfig() *Config {
	return &Config{
		Goals: GoalsConfig{
			Tasks: constants.DefaultGoalTasks,

			// Habits: zero tracks the number of habits defined.
			Habits: 0,

			FocusMinutes: constants.DefaultGoalFocusMinutes,
		},
		Calendar: CalendarConfig{
			// Timezone: empty follows the system zone.
			Timezone: "",
		},
		Storage: StorageConfig{
			DataFile:    "",
			LockTimeout: constants.DefaultLockTimeout,
		},
	}
}
