// Package cli provides the command-line interface for cadence.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger built in PersistentPreRunE.
// Access is protected by globalLoggerMu.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has
// run; before that it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the cadence CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "cadence",
		Short: "cadence - tasks, habits and focus time in one place",
		Long: `cadence tracks tasks with dependencies and checklists, daily habits
and focus sessions, and summarizes your day or week against your goals.

Data is kept in a single YAML file under $CADENCE_HOME (default ~/.cadence).

Examples:
  cadence task capture "Write report #work !high @tomorrow"
  cadence dep add <task> <blocker>
  cadence habit check <habit>
  cadence summary --window week`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			applyEnvFlags(v, cmd, flags)

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			tui.CheckNoColor()

			logger := InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()

			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddTaskCommand(cmd)
	AddDepCommand(cmd)
	AddSubtaskCommand(cmd)
	AddHabitCommand(cmd)
	AddProjectCommand(cmd)
	AddFocusCommand(cmd)
	AddSummaryCommand(cmd)
	AddGoalsCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are printed to stderr with a suggested action, except in JSON mode
// where the command has already written them to stdout.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, errors.ErrJSONErrorOutput) {
		tui.NewTTYOutput(cmd.ErrOrStderr()).Error(err)
	}
	return err
}
