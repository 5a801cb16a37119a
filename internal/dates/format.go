package dates

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
	LongLayout = "January 2 (Mon)"

	// OverdueText is shown instead of a remaining time once the deadline passed.
	OverdueText = "overdue"
)

// FormatDate renders t as YYYY-MM-DD in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// FormatTime renders t as HH:MM in loc.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeLayout)
}

// FormatDateTime renders t as "YYYY-MM-DD HH:MM" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return FormatDate(t, loc) + " " + FormatTime(t, loc)
}

// FormatLong renders t as "January 2 (Mon)" in loc.
func FormatLong(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LongLayout)
}

// FormatRelative describes t relative to now's calendar day: today, tomorrow,
// yesterday, up to a week either way in days, otherwise the long date.
func FormatRelative(t, now time.Time) string {
	days := DaysBetween(t, now)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days <= 7:
		return fmt.Sprintf("%d days from now", days)
	case days < -1 && days >= -7:
		return fmt.Sprintf("%d days ago", -days)
	}
	return FormatLong(t, now.Location())
}

// FormatRemaining describes the time left until t, or OverdueText when t is
// already behind now.
func FormatRemaining(t, now time.Time) string {
	diff := t.Sub(now)
	if diff < 0 {
		return OverdueText
	}

	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	if hours > 24 {
		return plural(hours/24, "day") + " left"
	}
	if hours > 0 {
		return plural(hours, "hour") + " " + plural(minutes, "minute") + " left"
	}
	return plural(minutes, "minute") + " left"
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
