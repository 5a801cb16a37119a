package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-manager/internal/domain"
)

func TestMapper_TaskToRecord(t *testing.T) {
	mapper := NewMapper(time.UTC)
	due := time.Date(2024, 5, 3, 23, 59, 0, 0, time.FixedZone("KST", 9*3600))
	folder := "work"

	record := mapper.TaskToRecord(domain.Task{
		ID:        "a",
		Title:     "Title",
		DueDate:   &due,
		FolderID:  &folder,
		CreatedAt: now,
	})

	assert.Equal(t, "a", record.ID)
	require.NotNil(t, record.DueDate)
	assert.Equal(t, "2024-05-03T23:59:00+09:00", *record.DueDate)
	assert.Equal(t, "2024-05-01T12:00:00Z", record.CreatedAt)
	assert.Nil(t, record.CompletedAt)
	assert.Equal(t, &folder, record.FolderID)
}

func TestMapper_KeepsFractionalSeconds(t *testing.T) {
	mapper := NewMapper(time.UTC)
	completedAt := time.Date(2024, 5, 1, 10, 0, 0, 900_000_000, time.UTC)

	record := mapper.TaskToRecord(domain.Task{
		ID:          "a",
		Title:       "Title",
		Completed:   true,
		CreatedAt:   time.Date(2024, 5, 1, 9, 0, 0, 123_456_789, time.UTC),
		CompletedAt: &completedAt,
	})
	assert.Equal(t, "2024-05-01T09:00:00.123456789Z", record.CreatedAt)
	require.NotNil(t, record.CompletedAt)
	assert.Equal(t, "2024-05-01T10:00:00.9Z", *record.CompletedAt)

	task, err := mapper.TaskFromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, 123_456_789, task.CreatedAt.Nanosecond())
	assert.True(t, completedAt.Equal(*task.CompletedAt))
}

func TestMapper_ParseTime(t *testing.T) {
	seoul := time.FixedZone("KST", 9*3600)
	mapper := NewMapper(seoul)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339 utc", "2024-05-01T03:00:00Z", time.Date(2024, 5, 1, 12, 0, 0, 0, seoul), false},
		{"rfc3339 millis", "2024-05-01T03:00:00.000Z", time.Date(2024, 5, 1, 12, 0, 0, 0, seoul), false},
		{"form input is local", "2024-05-03T23:59", time.Date(2024, 5, 3, 23, 59, 0, 0, seoul), false},
		{"seconds without zone", "2024-05-03T08:15:30", time.Date(2024, 5, 3, 8, 15, 30, 0, seoul), false},
		{"garbage", "next tuesday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapper.parseTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, seoul, got.Location())
		})
	}
}

func TestMapper_TaskFromRecord_EmptyFolderIsUnfiled(t *testing.T) {
	mapper := NewMapper(time.UTC)
	empty := ""

	task, err := mapper.TaskFromRecord(TaskRecord{ID: "a", Title: "x", FolderID: &empty, CreatedAt: "2024-05-01T12:00:00Z"})
	require.NoError(t, err)
	assert.True(t, task.IsUnfiled())
}

func TestMapper_Folders(t *testing.T) {
	mapper := NewMapper(nil)
	folders := DefaultFolders()

	assert.Equal(t, folders, mapper.FoldersFromRecords(mapper.FoldersToRecords(folders)))
	assert.Equal(t, domain.DefaultFolderColor, mapper.FolderFromRecord(FolderRecord{ID: "x", Name: "X"}).Color)
}
