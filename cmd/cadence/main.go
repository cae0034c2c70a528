// Package main provides the entry point for the cadence CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/cadence/internal/cli"
	"github.com/mrz1836/cadence/internal/signal"
)

// Set at build time via ldflags.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	handler := signal.NewHandler(context.Background())

	err := cli.Execute(handler.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})

	select {
	case <-handler.Interrupted():
		logger := cli.GetLogger()
		logger.Warn().Err(err).Msg("interrupted")
	default:
	}

	handler.Stop()
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
