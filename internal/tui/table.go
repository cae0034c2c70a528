package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table renders fixed-width rows. Widths count terminal cells, so wide
// runes and emoji in titles line up.
type Table struct {
	w       io.Writer
	styles  *OutputStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewOutputStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Heading.Render(t.format(names)))
}

// WriteRow writes a data row. Missing values render empty and long values
// are truncated with an ellipsis.
func (t *Table) WriteRow(values ...string) {
	_, _ = fmt.Fprintln(t.w, t.format(values))
}

// WriteStyledRow writes a row whose cells have already been styled. plain
// holds the unstyled text of each cell for width calculation. A cell too
// wide for its column falls back to its truncated plain text.
func (t *Table) WriteStyledRow(styled, plain []string) {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		var text, cell string
		if i < len(plain) && i < len(styled) {
			text, cell = plain[i], styled[i]
		}
		if col.Width > 0 && runewidth.StringWidth(text) > col.Width {
			text = Truncate(text, col.Width)
			cell = text
		}
		cells[i] = pad(cell, runewidth.StringWidth(text), col)
	}
	_, _ = fmt.Fprintln(t.w, strings.TrimRight(strings.Join(cells, " "), " "))
}

func (t *Table) format(values []string) string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		value = Truncate(value, col.Width)
		cells[i] = pad(value, runewidth.StringWidth(value), col)
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}

// pad fills cell, whose visible width is width, out to the column width.
func pad(cell string, width int, col TableColumn) string {
	fill := col.Width - width
	if fill <= 0 {
		return cell
	}
	if col.Align == AlignRight {
		return strings.Repeat(" ", fill) + cell
	}
	return cell + strings.Repeat(" ", fill)
}

// Truncate shortens s to at most width terminal cells, ending in "…" when
// anything was cut. A width below 1 leaves s unchanged.
func Truncate(s string, width int) string {
	if width < 1 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
