package services

import (
	"time"

	"todo-manager/internal/dates"
	"todo-manager/internal/domain"
)

// FilterTasks returns the tasks visible under category, restricted to
// folderID when it is non-nil. The input slice is never reordered.
func FilterTasks(tasks []domain.Task, category domain.Category, folderID *string, now time.Time) []domain.Task {
	visible := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if folderID != nil && !task.InFolder(*folderID) {
			continue
		}
		if !MatchesCategory(task, category, now) {
			continue
		}
		visible = append(visible, task)
	}
	return visible
}

// MatchesCategory reports whether task belongs to category. Unknown
// categories behave like CategoryAll.
func MatchesCategory(task domain.Task, category domain.Category, now time.Time) bool {
	if category == domain.CategoryCompleted {
		return task.Completed
	}
	if task.Completed {
		return false
	}

	switch category {
	case domain.CategoryToday:
		return task.HasDueDate() && dates.IsToday(*task.DueDate, now)
	case domain.CategoryWeek:
		return task.HasDueDate() && dates.IsThisWeek(*task.DueDate, now) && !dates.IsToday(*task.DueDate, now)
	case domain.CategoryLater:
		return !task.HasDueDate() || dates.IsFuture(*task.DueDate, now)
	default:
		return true
	}
}
