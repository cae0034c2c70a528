// Package config provides configuration management for cadence with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (CADENCE_* prefix, "." replaced by "_")
//  2. Config file ($CADENCE_HOME/config.yaml, default ~/.cadence/config.yaml)
//  3. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for cadence.
type Config struct {
	// Goals are the daily targets used until the user stores their own.
	Goals GoalsConfig `yaml:"goals" mapstructure:"goals"`

	// Calendar controls how timestamps map onto calendar days.
	Calendar CalendarConfig `yaml:"calendar" mapstructure:"calendar"`

	// Storage controls where and how the data file is kept.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// GoalsConfig holds the default daily goals.
type GoalsConfig struct {
	// Tasks is the number of tasks to complete per day.
	// Default: 5
	Tasks int `yaml:"tasks" mapstructure:"tasks"`

	// Habits is the number of habit check-ins per day. Zero means one per
	// habit currently defined.
	// Default: 0
	Habits int `yaml:"habits" mapstructure:"habits"`

	// FocusMinutes is the focus time target per day.
	// Default: 90
	FocusMinutes int `yaml:"focus_minutes" mapstructure:"focus_minutes"`
}

// CalendarConfig controls day boundaries.
type CalendarConfig struct {
	// Timezone is an IANA zone name such as "Europe/Berlin". Empty means the
	// system local zone.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// StorageConfig controls the data file.
type StorageConfig struct {
	// DataFile overrides the data file path. Empty means
	// $CADENCE_HOME/data.yaml.
	DataFile string `yaml:"data_file" mapstructure:"data_file"`

	// LockTimeout is how long to wait for another cadence process to
	// release the data file.
	// Default: 5s
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
}

// Location resolves Timezone. An empty zone resolves to time.Local.
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
