package services

import (
	"todo-manager/internal/domain"
)

// Counts holds the badge numbers shown next to categories and folders.
type Counts struct {
	Total      int                     `json:"total"`
	Categories map[domain.Category]int `json:"categories"`
	Folders    map[string]int          `json:"folders"`
	Unfiled    int                     `json:"unfiled"`
}

// Category returns the count for c, zero when absent.
func (c Counts) Category(category domain.Category) int {
	return c.Categories[category]
}

// Folder returns the number of incomplete tasks in the folder.
func (c Counts) Folder(folderID string) int {
	return c.Folders[folderID]
}

// Dashboard summarises the day.
type Dashboard struct {
	Today          []domain.Task `json:"today"`
	Overdue        []domain.Task `json:"overdue"`
	CompletedToday int           `json:"completed_today"`
	Pending        int           `json:"pending"`
}

// OverduePreview returns at most limit overdue tasks and how many were left out.
func (d Dashboard) OverduePreview(limit int) ([]domain.Task, int) {
	if limit < 0 || len(d.Overdue) <= limit {
		return d.Overdue, 0
	}
	return d.Overdue[:limit], len(d.Overdue) - limit
}
