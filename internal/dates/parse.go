package dates

import (
	"strings"
	"time"

	"todo-manager/internal/errors"
)

// DefaultDueHour and DefaultDueMinute are applied when a due date is given
// without a time of day.
const (
	DefaultDueHour   = 23
	DefaultDueMinute = 59
)

// ParseDue combines a YYYY-MM-DD date and an optional HH:MM time into a due
// instant in loc. An empty date yields nil.
func ParseDue(date, clockTime string, loc *time.Location) (*time.Time, error) {
	date = strings.TrimSpace(date)
	clockTime = strings.TrimSpace(clockTime)

	if date == "" {
		if clockTime != "" {
			return nil, errors.NewInvalidInputError("due_time", clockTime, "a time needs a date")
		}
		return nil, nil
	}

	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return nil, errors.NewInvalidInputError("due_date", date, "expected YYYY-MM-DD")
	}

	hour, minute := DefaultDueHour, DefaultDueMinute
	if clockTime != "" {
		tod, err := time.Parse(TimeLayout, clockTime)
		if err != nil {
			return nil, errors.NewInvalidInputError("due_time", clockTime, "expected HH:MM")
		}
		hour, minute = tod.Hour(), tod.Minute()
	}

	due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	return &due, nil
}
