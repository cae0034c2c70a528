package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/clock"
	"github.com/mrz1836/cadence/internal/constants"
	"github.com/mrz1836/cadence/internal/tracker"
)

// testNow is a Wednesday.
var testNow = time.Date(2024, time.June, 12, 9, 30, 0, 0, time.UTC) //nolint:gochecknoglobals // test fixture

// cliEnv runs commands against an isolated CADENCE_HOME with a fixed clock
// and predictable ids (t-1, t-2, h-1, ...). It uses t.Setenv, so tests using
// it cannot run in parallel.
type cliEnv struct {
	t    *testing.T
	home string
	ctx  context.Context //nolint:containedctx // shared across invocations in one test
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	t.Setenv("CADENCE_CALENDAR_TIMEZONE", "UTC")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(CloseLogFile)

	// Never prompt, even when the test binary runs at a terminal.
	originalTerminalCheck := terminalCheck
	terminalCheck = func() bool { return false }
	t.Cleanup(func() { terminalCheck = originalTerminalCheck })

	ctx := contextWithClock(context.Background(), clock.FixedClock{Time: testNow})
	ctx = contextWithIDGenerator(ctx, sequentialIDs())
	return &cliEnv{t: t, home: home, ctx: ctx}
}

func sequentialIDs() tracker.IDGenerator {
	counters := map[string]int{}
	return func(prefix string) string {
		counters[prefix]++
		return fmt.Sprintf("%s-%d", prefix, counters[prefix])
	}
}

// run executes one cadence invocation and returns everything it printed.
func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(e.ctx)
	return out.String(), err
}

// mustRun is run for invocations that have to succeed.
func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, out)
	return out
}

// runJSON runs with --output json and decodes the envelope.
func runJSON[T any](e *cliEnv, args ...string) (envelope[T], error) {
	e.t.Helper()
	out, runErr := e.run(append(args, "--output", "json")...)
	var env envelope[T]
	require.NoError(e.t, json.Unmarshal([]byte(out), &env), out)
	return env, runErr
}

// mustJSON is runJSON for invocations that have to succeed.
func mustJSON[T any](e *cliEnv, args ...string) T {
	e.t.Helper()
	env, err := runJSON[T](e, args...)
	require.NoError(e.t, err)
	require.True(e.t, env.Success)
	return env.Data
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Command string `json:"command"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Action  string `json:"action"`
}

func (e *cliEnv) dataFileExists() bool {
	_, err := os.Stat(filepath.Join(e.home, constants.DataFileName))
	return err == nil
}
