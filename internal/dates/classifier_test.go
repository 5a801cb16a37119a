package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday, May 1, 2024 at noon.
var wednesdayNoon = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek goes back to sunday",
			now:  wednesdayNoon,
			want: time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday is its own week start",
			now:  time.Date(2024, 4, 28, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday night stays in the same week",
			now:  time.Date(2024, 5, 4, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "crosses a year boundary",
			now:  time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
			want: time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(StartOfWeek(tt.now)), "got %v", StartOfWeek(tt.now))
			assert.True(t, tt.want.AddDate(0, 0, 7).Equal(EndOfWeek(tt.now)))
		})
	}
}

func TestIsToday(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"start of day", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"end of day", time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC), true},
		{"next midnight", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), false},
		{"previous evening", time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC), false},
		{"same day other year", time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC), false},
		{"other zone same local day", time.Date(2024, 5, 1, 20, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)), true},
		{"other zone previous local day", time.Date(2024, 5, 2, 2, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsToday(tt.t, wednesdayNoon))
		})
	}
}

func TestIsThisWeek_Boundaries(t *testing.T) {
	start := StartOfWeek(wednesdayNoon)

	assert.True(t, IsThisWeek(start, wednesdayNoon), "week start is included")
	assert.False(t, IsThisWeek(start.AddDate(0, 0, 7), wednesdayNoon), "start + 7 days is excluded")
	assert.True(t, IsThisWeek(start.AddDate(0, 0, 7).Add(-time.Nanosecond), wednesdayNoon))
	assert.False(t, IsThisWeek(start.Add(-time.Nanosecond), wednesdayNoon))
}

func TestIsFuture(t *testing.T) {
	end := EndOfWeek(wednesdayNoon)

	assert.True(t, IsFuture(end, wednesdayNoon))
	assert.True(t, IsFuture(end.AddDate(0, 0, 30), wednesdayNoon))
	assert.False(t, IsFuture(end.Add(-time.Nanosecond), wednesdayNoon))
	assert.False(t, IsFuture(wednesdayNoon.Add(time.Hour), wednesdayNoon), "later today is not future")
}

func TestIsPast(t *testing.T) {
	assert.True(t, IsPast(wednesdayNoon.Add(-time.Nanosecond), wednesdayNoon))
	assert.False(t, IsPast(wednesdayNoon, wednesdayNoon))
	assert.False(t, IsPast(wednesdayNoon.Add(time.Minute), wednesdayNoon))
}

func TestClassification_Partition(t *testing.T) {
	nows := []time.Time{
		wednesdayNoon,
		time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 4, 23, 59, 59, 0, time.UTC),
	}

	for _, now := range nows {
		end := EndOfWeek(now)
		for ts := now.AddDate(0, 0, -14); ts.Before(now.AddDate(0, 0, 21)); ts = ts.Add(37 * time.Minute) {
			today := IsToday(ts, now)
			weekNotToday := IsThisWeek(ts, now) && !today

			assert.False(t, today && weekNotToday, "double classification for %v", ts)
			if today {
				assert.True(t, IsThisWeek(ts, now), "today must be inside the week for %v", ts)
			}
			assert.Equal(t, !ts.Before(end), IsFuture(ts, now), "future mismatch for %v", ts)
			assert.False(t, IsThisWeek(ts, now) && IsFuture(ts, now), "week and future overlap at %v", ts)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"same instant", wednesdayNoon, 0},
		{"late tonight", time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC), 0},
		{"just after midnight", time.Date(2024, 5, 2, 0, 1, 0, 0, time.UTC), 1},
		{"last week", time.Date(2024, 4, 24, 9, 0, 0, 0, time.UTC), -7},
		{"across month", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.t, wednesdayNoon))
		})
	}
}

func TestDaysBetween_DaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("zoneinfo not available")
	}
	// DST starts on March 10, 2024; the day is 23 hours long.
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(time.Date(2024, 3, 10, 12, 0, 0, 0, loc), now))
	assert.Equal(t, 2, DaysBetween(time.Date(2024, 3, 11, 0, 30, 0, 0, loc), now))
	assert.True(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc).Equal(StartOfWeek(time.Date(2024, 3, 13, 9, 0, 0, 0, loc))))
}
