package tui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrz1836/cadence/internal/errors"
)

// Output format names accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for structured output to a terminal.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
	// IsJSON reports whether this output speaks JSON only.
	IsJSON() bool
}

// TTYOutput provides styled output for terminal displays.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a new TTYOutput.
func NewTTYOutput(w io.Writer) *TTYOutput {
	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Success prints a success message.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render(IconDone+" "+msg))
}

// Error prints an error message followed by a suggested action when one is known.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
	if _, action := errors.Actionable(err); action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  "+action))
	}
}

// Warning prints a warning message.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints an informational message.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// JSON outputs a value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// IsJSON returns false.
func (o *TTYOutput) IsJSON() bool { return false }

// JSONOutput provides plain JSON output without styling.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

// Success is a no-op for JSON output.
func (o *JSONOutput) Success(_ string) {}

// Error outputs the error as JSON.
func (o *JSONOutput) Error(err error) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = encodeJSON(o.w, map[string]string{"error": err.Error()})
}

// Warning is a no-op for JSON output.
func (o *JSONOutput) Warning(_ string) {}

// Info is a no-op for JSON output.
func (o *JSONOutput) Info(_ string) {}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// IsJSON returns true.
func (o *JSONOutput) IsJSON() bool { return true }

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
