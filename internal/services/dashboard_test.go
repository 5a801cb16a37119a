package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-manager/internal/domain"
)

func TestBuildDashboard(t *testing.T) {
	tasks := []domain.Task{
		task("tonight", due(at(5, 1, 20, 0))),
		task("this-morning", due(at(5, 1, 9, 0))),
		task("yesterday", due(at(4, 30, 9, 0))),
		task("last-month", due(at(4, 1, 9, 0))),
		task("friday", due(at(5, 3, 9, 0))),
		task("undated"),
		task("done-today", completedAt(at(5, 1, 7, 0))),
		task("done-earlier", completedAt(at(4, 29, 7, 0))),
	}

	dashboard := BuildDashboard(tasks, now)

	assert.Equal(t, []string{"this-morning", "tonight"}, ids(dashboard.Today), "an overdue task due today stays in today's list")
	assert.Equal(t, []string{"last-month", "yesterday"}, ids(dashboard.Overdue))
	assert.Equal(t, 1, dashboard.CompletedToday)
	assert.Equal(t, 6, dashboard.Pending)
}

func TestDashboard_OverduePreview(t *testing.T) {
	dashboard := Dashboard{Overdue: []domain.Task{task("a"), task("b"), task("c"), task("d"), task("e")}}

	shown, more := dashboard.OverduePreview(3)
	assert.Equal(t, []string{"a", "b", "c"}, ids(shown))
	assert.Equal(t, 2, more)

	shown, more = dashboard.OverduePreview(10)
	assert.Len(t, shown, 5)
	assert.Zero(t, more)

	shown, more = dashboard.OverduePreview(-1)
	assert.Len(t, shown, 5)
	assert.Zero(t, more)
}
