package calendar

// Week is a Monday through Sunday span of days.
type Week struct {
	Start Day
	End   Day
}

// WeekOf returns the ISO week (Monday start) containing d.
func WeekOf(d Day) Week {
	// Weekday counts from Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDays(-offset)
	return Week{Start: start, End: start.AddDays(6)}
}

// Previous returns the week immediately before w.
func (w Week) Previous() Week {
	start := w.Start.AddDays(-7)
	return Week{Start: start, End: start.AddDays(6)}
}

// Contains reports whether d lies within w.
func (w Week) Contains(d Day) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns every day of w in order.
func (w Week) Days() []Day {
	return Range(w.Start, w.End)
}

// Range returns the days from start through end inclusive.
// It returns nil when end is before start.
func Range(start, end Day) []Day {
	if end.Before(start) {
		return nil
	}
	days := make([]Day, 0, 7)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
