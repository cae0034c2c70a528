package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/tui"
)

// commandResult is the envelope every command writes in JSON mode.
type commandResult struct {
	Success bool   `json:"success"`
	Command string `json:"command"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Action  string `json:"action,omitempty"`
}

// commandFunc is the body of a command. out is already set up for the
// requested output format.
type commandFunc func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error

// runCommand adapts fn to cobra. In JSON mode a failure is written as a
// commandResult and the returned error wraps ErrJSONErrorOutput so Execute
// does not print it a second time.
func runCommand(fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		out := tui.NewOutput(cmd.OutOrStdout(), cmd.Flag("output").Value.String())
		err := fn(ctx, cmd, args, out)
		if err == nil || !out.IsJSON() {
			return err
		}

		_, action := errors.Actionable(err)
		_ = out.JSON(commandResult{
			Command: commandName(cmd),
			Error:   err.Error(),
			Action:  action,
		})
		return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
	}
}

// emit writes data as a successful commandResult in JSON mode, or calls
// text with the command's stdout otherwise.
func emit(cmd *cobra.Command, out tui.Output, data any, text func(w io.Writer)) error {
	if out.IsJSON() {
		return out.JSON(commandResult{Success: true, Command: commandName(cmd), Data: data})
	}
	text(cmd.OutOrStdout())
	return nil
}

// commandName is the command path without the binary name, e.g. "task add".
func commandName(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

// titleCase renders labels such as priorities and window names for display.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// joinArgs turns the remaining positional arguments into one title, so
// quoting is optional.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
