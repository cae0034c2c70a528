// Package constants provides centralized constant values used throughout cadence.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by cadence for organizing data.
const (
	// CadenceHome is the hidden directory name where cadence stores all its data.
	// This directory is created in the user's home directory unless
	// CADENCE_HOME points elsewhere.
	CadenceHome = ".cadence"

	// HomeEnvVar overrides the cadence home directory.
	HomeEnvVar = "CADENCE_HOME"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File names used by cadence.
const (
	// DataFileName is the YAML snapshot holding every task, habit and session.
	DataFileName = "data.yaml"

	// LockFileName guards DataFileName against concurrent cadence processes.
	LockFileName = "data.lock"

	// GlobalConfigName is the name of the configuration file inside the home directory.
	GlobalConfigName = "config.yaml"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "cadence.log"
)

// Log rotation settings for the CLI log file.
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
	LogCompress   = true
)

// Storage defaults.
const (
	// DefaultLockTimeout is how long a command waits for the data file lock.
	DefaultLockTimeout = 5 * time.Second

	// LockRetryInterval is the pause between lock attempts.
	LockRetryInterval = 50 * time.Millisecond

	// SnapshotSchemaVersion is the current version of the data file layout.
	SnapshotSchemaVersion = "1.0"
)

// Daily goal defaults applied when the user has not set their own.
// The habits default is "every habit currently defined" and so has no constant.
const (
	DefaultGoalTasks        = 5
	DefaultGoalFocusMinutes = 90
)

// DateLayout is the textual calendar-day form exchanged with collaborators.
const DateLayout = "2006-01-02"
