package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-manager/internal/domain"
)

func TestSortTasks_AllScenario(t *testing.T) {
	tasks := []domain.Task{
		task("today-task", due(at(5, 1, 14, 0))),
		task("no-due-task"),
		task("yesterday-task", due(at(4, 30, 9, 0))),
	}

	visible := FilterTasks(tasks, domain.CategoryAll, nil, now)
	assert.Len(t, visible, 3)
	assert.Equal(t, []string{"yesterday-task", "today-task", "no-due-task"}, ids(SortTasks(visible, domain.CategoryAll)))
}

func TestSortTasks_TieBreaks(t *testing.T) {
	tests := []struct {
		name  string
		tasks []domain.Task
		want  []string
	}{
		{
			name: "dated before undated",
			tasks: []domain.Task{
				task("undated"),
				task("dated", due(at(6, 1, 0, 0))),
			},
			want: []string{"dated", "undated"},
		},
		{
			name: "ascending due date",
			tasks: []domain.Task{
				task("late", due(at(5, 9, 0, 0))),
				task("early", due(at(5, 2, 0, 0))),
				task("middle", due(at(5, 5, 0, 0))),
			},
			want: []string{"early", "middle", "late"},
		},
		{
			name: "undated newest first",
			tasks: []domain.Task{
				task("old", createdAt(at(4, 1, 9, 0))),
				task("new", createdAt(at(4, 30, 9, 0))),
				task("mid", createdAt(at(4, 15, 9, 0))),
			},
			want: []string{"new", "mid", "old"},
		},
		{
			name: "equal keys keep input order",
			tasks: []domain.Task{
				task("first", due(at(5, 2, 9, 0))),
				task("second", due(at(5, 2, 9, 0))),
				task("third", due(at(5, 2, 9, 0))),
			},
			want: []string{"first", "second", "third"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortTasks(tt.tasks, domain.CategoryAll)))
		})
	}
}

func TestSortTasks_Completed(t *testing.T) {
	tasks := []domain.Task{
		task("a", completedAt(at(4, 29, 9, 0))),
		task("b", completedAt(at(5, 1, 9, 0))),
		task("c", completedAt(nil)),
		task("d", completedAt(at(4, 30, 9, 0)), due(at(4, 1, 0, 0))),
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(SortTasks(tasks, domain.CategoryCompleted)))
}

func TestSortTasks_Idempotent(t *testing.T) {
	tasks := []domain.Task{
		task("u1", createdAt(at(4, 2, 0, 0))),
		task("d1", due(at(5, 3, 0, 0))),
		task("u2", createdAt(at(4, 20, 0, 0))),
		task("d2", due(at(5, 1, 0, 0))),
		task("d3", due(at(5, 1, 0, 0))),
	}

	for _, category := range domain.Categories {
		once := SortTasks(tasks, category)
		twice := SortTasks(once, category)
		assert.Equal(t, ids(once), ids(twice), "category %s", category)
	}
}

func TestSortTasks_ReturnsCopy(t *testing.T) {
	tasks := []domain.Task{task("b", due(at(5, 3, 0, 0))), task("a", due(at(5, 2, 0, 0)))}

	sorted := SortTasks(tasks, domain.CategoryAll)

	assert.Equal(t, []string{"a", "b"}, ids(sorted))
	assert.Equal(t, []string{"b", "a"}, ids(tasks))
}
