package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mrz1836/cadence/internal/tui"
)

// terminalCheck is a variable for the terminal check function, allowing tests to override it.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = isTerminal

// confirmPrompt asks a yes/no question. Tests replace it to answer without a TTY.
//
//nolint:gochecknoglobals // Required for test injection of the prompt
var confirmPrompt = promptConfirm

// isTerminal returns true if stdin is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptConfirm shows a huh confirm form.
func promptConfirm(title, description string) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes, delete").
				Negative("No, cancel").
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}

// confirmDelete reports whether a deletion may go ahead. It only asks when
// the user is at a terminal, the output is text and --force was not given.
// A declined prompt prints a notice and returns false.
func confirmDelete(out tui.Output, force bool, title, description string) (bool, error) {
	if force || out.IsJSON() || !terminalCheck() {
		return true, nil
	}

	ok, err := confirmPrompt(title, description)
	if err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	if !ok {
		out.Info("Operation canceled.")
	}
	return ok, nil
}
