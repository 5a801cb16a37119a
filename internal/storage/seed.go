package storage

import (
	"time"

	"todo-manager/internal/domain"
)

// DefaultFolders returns the folders a fresh installation starts with.
func DefaultFolders() []domain.Folder {
	return []domain.Folder{
		{ID: "work", Name: "Work", Color: "#FFB5BA"},
		{ID: "personal", Name: "Personal", Color: "#B5D8FF"},
		{ID: "study", Name: "Study", Color: "#C5E8B7"},
	}
}

// SampleTasks returns the example tasks of a fresh installation, dated
// relative to now.
func SampleTasks(now time.Time) []domain.Task {
	year, month, day := now.Date()
	at := func(hour int) *time.Time {
		t := time.Date(year, month, day, hour, 0, 0, 0, now.Location())
		return &t
	}
	inTwoDays := now.Add(48 * time.Hour)
	folder := func(id string) *string { return &id }

	return []domain.Task{
		{
			ID:        "1",
			Title:     "Write the project proposal",
			Memo:      "Check the budget with the marketing team",
			DueDate:   at(14),
			FolderID:  folder("work"),
			CreatedAt: now,
		},
		{
			ID:        "2",
			Title:     "Study Go concurrency",
			Memo:      "Review channels and context cancellation",
			DueDate:   at(20),
			FolderID:  folder("study"),
			CreatedAt: now,
		},
		{
			ID:        "3",
			Title:     "Grocery shopping",
			Memo:      "Milk, eggs, bread",
			DueDate:   &inTwoDays,
			FolderID:  folder("personal"),
			CreatedAt: now,
		},
	}
}
