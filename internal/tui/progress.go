package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// defaultBarWidth is used when a caller asks for a bar narrower than one cell.
const defaultBarWidth = 10

// ProgressBar renders a static completion bar such as "███░░░ 2/4".
// It wraps the bubbles progress model and only uses its ViewAs rendering.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a bar width cells wide. Widths below 1 become 10.
// With color support the fill is a green gradient; otherwise plain blocks.
func NewProgressBar(width int) *ProgressBar {
	if width < 1 {
		width = defaultBarWidth
	}

	opts := []progress.Option{
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	}
	if HasColorSupport() {
		opts = append(opts, progress.WithScaledGradient("#008700", "#00FF87")) // ColorSuccess light → dark
	} else {
		opts = append(opts, progress.WithSolidFill("#808080"), progress.WithColorProfile(termenv.Ascii))
	}

	return &ProgressBar{bar: progress.New(opts...), width: width}
}

// Width returns the bar width in cells.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// Render returns the bar for ratio, clamped to [0, 1].
func (pb *ProgressBar) Render(ratio float64) string {
	return pb.bar.ViewAs(min(max(ratio, 0), 1))
}

// RenderCount renders the bar followed by "done/total".
func (pb *ProgressBar) RenderCount(done, total int) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("%s %d/%d", pb.Render(float64(done)/float64(total)), done, total)
}

// PadLabel left-aligns label in width cells so bars line up under each other.
func PadLabel(label string, width int) string {
	return runewidth.FillRight(Truncate(label, width), width)
}
