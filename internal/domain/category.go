package domain

import (
	"fmt"
	"strings"
)

// Category is a time-based view over the task collection.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryToday     Category = "today"
	CategoryWeek      Category = "week"
	CategoryLater     Category = "later"
	CategoryCompleted Category = "completed"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAll,
	CategoryToday,
	CategoryWeek,
	CategoryLater,
	CategoryCompleted,
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAll, CategoryToday, CategoryWeek, CategoryLater, CategoryCompleted:
		return true
	}
	return false
}

// Label returns the heading shown for the category.
func (c Category) Label() string {
	switch c {
	case CategoryToday:
		return "Today"
	case CategoryWeek:
		return "This Week"
	case CategoryLater:
		return "Later"
	case CategoryCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// EmptyMessage is shown when the category has nothing to list.
func (c Category) EmptyMessage() string {
	switch c {
	case CategoryToday:
		return "Nothing due today."
	case CategoryWeek:
		return "Nothing else due this week."
	case CategoryLater:
		return "No tasks planned for later."
	case CategoryCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks. Add one to get started."
	}
}

func (c Category) String() string {
	return string(c)
}
