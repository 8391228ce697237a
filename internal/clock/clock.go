// Package clock provides the single time source shared by the vote guard
// and the winner archiver. Both derive calendar days from the same clock so
// a vote recorded just before midnight and a status check just after agree
// on what "today" means.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

// Now implements Clock.
func (f Func) Now() time.Time { return f() }

// System returns a clock that reads the wall clock in loc. A nil loc means
// UTC, which is the server deployment default.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Func(func() time.Time {
		return time.Now().In(loc)
	})
}

// DayKey formats t as the YYYY-MM-DD calendar day in t's location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek truncates t to the most recent Sunday midnight in t's location.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
