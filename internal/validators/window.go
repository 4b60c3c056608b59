package validators

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// TaskWindow is the daily time-of-day window in which today's task may be
// fetched. A window whose end is not after its start wraps past midnight;
// equal bounds keep it always open.
type TaskWindow struct {
	start    time.Duration
	end      time.Duration
	location *time.Location
	message  string
}

// NewTaskWindow parses "HH:MM" bounds and an IANA timezone name.
func NewTaskWindow(start, end, timezone string) (TaskWindow, error) {
	startAt, err := time.Parse(clockLayout, start)
	if err != nil {
		return TaskWindow{}, fmt.Errorf("invalid task window start %q: %w", start, err)
	}
	endAt, err := time.Parse(clockLayout, end)
	if err != nil {
		return TaskWindow{}, fmt.Errorf("invalid task window end %q: %w", end, err)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return TaskWindow{}, fmt.Errorf("invalid task window timezone %q: %w", timezone, err)
	}

	return TaskWindow{
		start:    sinceMidnight(startAt),
		end:      sinceMidnight(endAt),
		location: loc,
		message: fmt.Sprintf("Today's task is available between %s and %s (%s)",
			startAt.Format(clockLayout), endAt.Format(clockLayout), loc.String()),
	}, nil
}

// Check reports whether now falls inside the window. The start is inclusive
// and the end exclusive. When outside, the message explains the window.
func (w TaskWindow) Check(now time.Time) (bool, string) {
	if w.start == w.end {
		return true, ""
	}

	at := sinceMidnight(now.In(w.loc()))

	var open bool
	if w.start < w.end {
		open = at >= w.start && at < w.end
	} else {
		open = at >= w.start || at < w.end
	}

	if !open {
		return false, w.message
	}
	return true, ""
}

// SameDay reports whether a and b fall on the same calendar date in the
// window's timezone.
func (w TaskWindow) SameDay(a, b time.Time) bool {
	loc := w.loc()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// NextOpening returns the first moment of the calendar day after now at
// which the window is open.
func (w TaskWindow) NextOpening(now time.Time) time.Time {
	loc := w.loc()
	y, m, d := now.In(loc).Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	if w.start < w.end {
		return midnight.Add(w.start)
	}
	return midnight
}

func (w TaskWindow) loc() *time.Location {
	if w.location == nil {
		return time.UTC
	}
	return w.location
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
