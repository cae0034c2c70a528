// Package tui provides terminal output components for cadence.
//
// Styles are built with Lip Gloss. Every color is an AdaptiveColor with a
// light and a dark variant.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across components:
//   - ColorPrimary (Blue): Active states, headings
//   - ColorSuccess (Green): Completed items, met goals
//   - ColorWarning (Yellow): Blocked items, attention required
//   - ColorError (Red): Errors, urgent priority
//   - ColorMuted (Gray): Secondary text, low priority
//
// # NO_COLOR Support
//
// The root command calls CheckNoColor before any command runs. NO_COLOR (set
// to anything) and TERM=dumb both switch output to plain text.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/cadence/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for styling API
var (
	// ColorPrimary is blue, used for active states and headings.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for completed items.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for blocked items.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for errors and urgent tasks.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Task state icons. State is always shown as icon and text together so it
// survives NO_COLOR.
const (
	IconDone    = "✓"
	IconOpen    = "○"
	IconBlocked = "⊘"
)

// OutputStyles are the styles shared by text output.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Heading lipgloss.Style
}

// NewOutputStyles returns the shared styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Heading: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
	}
}

// PriorityColor returns the color used for a task priority.
func PriorityColor(p domain.Priority) lipgloss.AdaptiveColor {
	switch p {
	case domain.PriorityUrgent:
		return ColorError
	case domain.PriorityHigh:
		return ColorWarning
	case domain.PriorityMedium:
		return ColorPrimary
	default:
		return ColorMuted
	}
}

// PriorityStyle renders a priority label in its color.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PriorityColor(p))
}

// TaskIcon returns the state icon for a task.
func TaskIcon(completed, blocked bool) string {
	switch {
	case completed:
		return IconDone
	case blocked:
		return IconBlocked
	default:
		return IconOpen
	}
}

// CheckNoColor drops to the ASCII profile when colors are unsupported.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport reports false when NO_COLOR is present, even if empty,
// or TERM is dumb (https://no-color.org/).
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
