package aggregator

import (
	"fmt"
	"time"
)

// Range is a named window relative to a moment.
type Range string

const (
	// DayRange ...
	DayRange Range = "day"
	// WeekRange ...
	WeekRange Range = "week"
	// MonthRange ...
	MonthRange Range = "month"
)

// Window is an inclusive time range. Calendar days are taken in the location of Start.
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether both bounds are set and Start is not after End.
func (w Window) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && !w.Start.After(w.End)
}

// Contains reports whether t belongs to the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Previous returns the window of the same length which ends right before w starts.
func (w Window) Previous() Window {
	d := w.End.Sub(w.Start)

	return Window{
		Start: w.Start.Add(-d - time.Nanosecond),
		End:   w.Start.Add(-time.Nanosecond),
	}
}

// Days returns midnight of every calendar day the window touches.
func (w Window) Days() []time.Time {
	if !w.Valid() {
		return nil
	}

	loc := w.Start.Location()
	day := startOfDay(w.Start)
	last := startOfDay(w.End.In(loc))

	var out []time.Time
	for !day.After(last) {
		out = append(out, day)
		day = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	}

	return out
}

// NewWindow returns the window of the given range which contains t.
// Weeks start on Monday.
func NewWindow(r Range, t time.Time) (Window, error) {
	day := startOfDay(t)

	var start, end time.Time
	switch r {
	case DayRange:
		start, end = day, day.AddDate(0, 0, 1)
	case WeekRange:
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case MonthRange:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		end = start.AddDate(0, 1, 0)
	default:
		return Window{}, fmt.Errorf("unknown range %q", r)
	}

	return Window{Start: start, End: end.Add(-time.Nanosecond)}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
