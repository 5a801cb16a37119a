// Package dates classifies timestamps against a reference "now" and renders
// them for display. Local time is always the location of now.
package dates

import "time"

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns local midnight of the Sunday on or before now.
func StartOfWeek(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
}

// EndOfWeek returns local midnight of the upcoming Sunday, the exclusive end
// of the week that contains now.
func EndOfWeek(now time.Time) time.Time {
	return StartOfWeek(now).AddDate(0, 0, 7)
}

// IsToday reports whether t falls on now's calendar day.
func IsToday(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// IsThisWeek reports whether t lies in [StartOfWeek(now), EndOfWeek(now)).
func IsThisWeek(t, now time.Time) bool {
	start := StartOfWeek(now)
	end := start.AddDate(0, 0, 7)
	return !t.Before(start) && t.Before(end)
}

// IsPast reports whether t is strictly before now.
func IsPast(t, now time.Time) bool {
	return t.Before(now)
}

// IsFuture reports whether t lies beyond the current week. It is not the
// negation of IsPast.
func IsFuture(t, now time.Time) bool {
	return !t.Before(EndOfWeek(now))
}

// DaysBetween returns the number of calendar days from now's day to t's day.
// Negative values mean t is on an earlier day.
func DaysBetween(t, now time.Time) int {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
