package services

import (
	"time"

	"todo-manager/internal/domain"
)

// CountTasks derives every badge count from scratch.
func CountTasks(tasks []domain.Task, folders []domain.Folder, now time.Time) Counts {
	counts := Counts{
		Categories: make(map[domain.Category]int, len(domain.Categories)),
		Folders:    make(map[string]int, len(folders)),
	}
	for _, category := range domain.Categories {
		counts.Categories[category] = 0
	}
	for _, folder := range folders {
		counts.Folders[folder.ID] = 0
	}

	for _, task := range tasks {
		for _, category := range domain.Categories {
			if MatchesCategory(task, category, now) {
				counts.Categories[category]++
			}
		}
		if task.Completed {
			continue
		}

		counts.Total++
		if task.IsUnfiled() {
			counts.Unfiled++
		} else if _, known := counts.Folders[*task.FolderID]; known {
			counts.Folders[*task.FolderID]++
		}
	}

	return counts
}
