// Package editwindow implements the policy deciding which attendance dates
// may still be edited. Payroll closes on the 8th: through the 8th of a month
// the previous month is still open, from the 9th it is frozen and the first
// week of the next month opens instead.
package editwindow

import "time"

const (
	// CutoffDay is the last day of the month on which the previous month
	// can still be corrected.
	CutoffDay = 8

	// CreationWindowDays bounds admin backfill of new records to the
	// trailing 60 days. Independent of the edit window.
	CreationWindowDays = 60
)

// Window is an inclusive date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether a date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := normalize(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(year int, month time.Month) time.Time {
	return monthStart(year, month).AddDate(0, 1, -1)
}

// Compute returns the two editable windows for a given day. Through the
// cutoff day: the whole previous month and the whole current month. After
// the cutoff: the whole current month and days 1 through CutoffDay of the
// next month. Year rollover (Dec/Jan) follows from month arithmetic.
func Compute(today time.Time) (Window, Window) {
	t := normalize(today)
	year, month := t.Year(), t.Month()

	if t.Day() <= CutoffDay {
		prev := monthStart(year, month).AddDate(0, -1, 0)
		return Window{Start: prev, End: monthEnd(prev.Year(), prev.Month())},
			Window{Start: monthStart(year, month), End: monthEnd(year, month)}
	}

	next := monthStart(year, month).AddDate(0, 1, 0)
	return Window{Start: monthStart(year, month), End: monthEnd(year, month)},
		Window{Start: next, End: next.AddDate(0, 0, CutoffDay-1)}
}

// IsEditable reports whether a record date falls inside either window.
func IsEditable(recordDate, today time.Time) bool {
	first, second := Compute(today)
	return first.Contains(recordDate) || second.Contains(recordDate)
}

// WithinCreationWindow reports whether a date is inside the trailing
// window for manual record creation: no future dates, nothing older than
// CreationWindowDays before today.
func WithinCreationWindow(date, today time.Time) bool {
	d := normalize(date)
	t := normalize(today)
	return !d.After(t) && !d.Before(t.AddDate(0, 0, -CreationWindowDays))
}
