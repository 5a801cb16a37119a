package services

import (
	"sort"

	"todo-manager/internal/domain"
)

// SortTasks returns a stably sorted copy of tasks.
//
// Completed views put the most recently completed first. Every other view
// puts dated tasks before undated ones, dated tasks by ascending due date and
// undated tasks newest first.
func SortTasks(tasks []domain.Task, category domain.Category) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	less := lessByDue
	if category == domain.CategoryCompleted {
		less = lessByCompletion
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessByDue(a, b domain.Task) bool {
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		return a.DueDate.Before(*b.DueDate)
	case a.DueDate != nil:
		return true
	case b.DueDate != nil:
		return false
	default:
		return a.CreatedAt.After(b.CreatedAt)
	}
}

// Tasks missing completedAt sort last.
func lessByCompletion(a, b domain.Task) bool {
	switch {
	case a.CompletedAt != nil && b.CompletedAt != nil:
		return a.CompletedAt.After(*b.CompletedAt)
	case a.CompletedAt != nil:
		return true
	default:
		return false
	}
}
