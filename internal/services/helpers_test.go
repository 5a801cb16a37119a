package services

import (
	"time"

	"todo-manager/internal/domain"
)

// Wednesday, May 1, 2024 at noon. The week runs Sunday April 28 to Sunday May 5.
var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

type taskOpt func(*domain.Task)

func due(t *time.Time) taskOpt {
	return func(task *domain.Task) { task.DueDate = t }
}

func folder(id string) taskOpt {
	return func(task *domain.Task) { task.FolderID = &id }
}

func completedAt(t *time.Time) taskOpt {
	return func(task *domain.Task) {
		task.Completed = true
		task.CompletedAt = t
	}
}

func createdAt(t *time.Time) taskOpt {
	return func(task *domain.Task) { task.CreatedAt = *t }
}

func task(id string, opts ...taskOpt) domain.Task {
	t := domain.Task{ID: id, Title: id, CreatedAt: now.Add(-24 * time.Hour)}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
