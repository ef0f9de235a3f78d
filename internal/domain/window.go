package domain

import (
	"fmt"
	"time"
)

// DateWindow is the inclusive date range used to filter pull requests by
// creation time.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow validates and returns a window. Start must not be after End.
func NewDateWindow(start, end time.Time) (DateWindow, error) {
	if start.After(end) {
		return DateWindow{}, fmt.Errorf("invalid date window: start %s is after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return DateWindow{Start: start, End: end}, nil
}

// LastDays returns a window covering the last n days up to now, with the
// start truncated to midnight UTC.
func LastDays(n int, now time.Time) DateWindow {
	now = now.UTC()
	start := now.AddDate(0, 0, -n).Truncate(24 * time.Hour)
	return DateWindow{Start: start, End: now}
}

// Contains reports whether t falls within the window. Both bounds are
// inclusive.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// String renders the window as "YYYY-MM-DD..YYYY-MM-DD", the form the
// GitHub search API accepts for created-date ranges.
func (w DateWindow) String() string {
	const layout = "2006-01-02"
	return w.Start.Format(layout) + ".." + w.End.Format(layout)
}
