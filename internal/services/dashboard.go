package services

import (
	"time"

	"todo-manager/internal/dates"
	"todo-manager/internal/domain"
)

// BuildDashboard collects today's schedule, overdue tasks and daily totals.
func BuildDashboard(tasks []domain.Task, now time.Time) Dashboard {
	var dashboard Dashboard

	for _, task := range tasks {
		if task.Completed {
			if task.CompletedAt != nil && dates.IsToday(*task.CompletedAt, now) {
				dashboard.CompletedToday++
			}
			continue
		}

		dashboard.Pending++
		if !task.HasDueDate() {
			continue
		}
		due := *task.DueDate
		switch {
		case dates.IsToday(due, now):
			dashboard.Today = append(dashboard.Today, task)
		case dates.IsPast(due, now):
			dashboard.Overdue = append(dashboard.Overdue, task)
		}
	}

	dashboard.Today = SortTasks(dashboard.Today, domain.CategoryToday)
	dashboard.Overdue = SortTasks(dashboard.Overdue, domain.CategoryAll)
	return dashboard
}
