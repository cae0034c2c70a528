package tui

import (
	"fmt"

	"github.com/mrz1836/cadence/internal/calendar"
)

// DueLabel describes due relative to today: "today", "tomorrow",
// "in 3 days", "yesterday" or "4 days overdue". A zero due date yields "".
func DueLabel(due, today calendar.Day) string {
	if due.IsZero() {
		return ""
	}
	days := daysBetween(today, due)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}

// daysBetween counts calendar days from a to b; negative when b is earlier.
func daysBetween(a, b calendar.Day) int {
	n := 0
	for d := a; d.Before(b); d = d.AddDays(1) {
		n++
	}
	for d := a; d.After(b); d = d.AddDays(-1) {
		n--
	}
	return n
}

// FormatMinutes renders a duration in minutes as "45m", "2h" or "1h 30m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
