package storage

import (
	"fmt"
	"time"

	"todo-manager/internal/domain"
)

// legacyLayouts are accepted on read after RFC3339. The first is what a
// datetime-local form field produces.
var legacyLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Mapper converts between domain models and their persisted records.
type Mapper struct {
	loc *time.Location
}

// NewMapper creates a Mapper that reads zone-less timestamps in loc.
func NewMapper(loc *time.Location) *Mapper {
	if loc == nil {
		loc = time.Local
	}
	return &Mapper{loc: loc}
}

// TaskToRecord converts a domain Task to its record.
func (m *Mapper) TaskToRecord(task domain.Task) TaskRecord {
	return TaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Memo:        task.Memo,
		DueDate:     formatTimePtr(task.DueDate),
		FolderID:    task.FolderID,
		Completed:   task.Completed,
		CreatedAt:   formatTime(task.CreatedAt),
		CompletedAt: formatTimePtr(task.CompletedAt),
	}
}

// TaskFromRecord converts a record to a domain Task, repairing the
// completedAt invariant.
func (m *Mapper) TaskFromRecord(record TaskRecord) (domain.Task, error) {
	createdAt, err := m.parseTime(record.CreatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s createdAt: %w", record.ID, err)
	}
	dueDate, err := m.parseTimePtr(record.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s dueDate: %w", record.ID, err)
	}
	completedAt, err := m.parseTimePtr(record.CompletedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s completedAt: %w", record.ID, err)
	}

	folderID := record.FolderID
	if folderID != nil && *folderID == "" {
		folderID = nil
	}

	task := domain.Task{
		ID:          record.ID,
		Title:       record.Title,
		Memo:        record.Memo,
		DueDate:     dueDate,
		FolderID:    folderID,
		Completed:   record.Completed,
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
	}
	return task.Normalize(), nil
}

// TasksToRecords converts a slice of domain Tasks to records.
func (m *Mapper) TasksToRecords(tasks []domain.Task) []TaskRecord {
	records := make([]TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.TaskToRecord(task)
	}
	return records
}

// TasksFromRecords converts records to domain Tasks, failing on the first bad record.
func (m *Mapper) TasksFromRecords(records []TaskRecord) ([]domain.Task, error) {
	tasks := make([]domain.Task, len(records))
	for i, record := range records {
		task, err := m.TaskFromRecord(record)
		if err != nil {
			return nil, err
		}
		tasks[i] = task
	}
	return tasks, nil
}

// FolderToRecord converts a domain Folder to its record.
func (m *Mapper) FolderToRecord(folder domain.Folder) FolderRecord {
	return FolderRecord{ID: folder.ID, Name: folder.Name, Color: folder.Color}
}

// FolderFromRecord converts a record to a domain Folder.
func (m *Mapper) FolderFromRecord(record FolderRecord) domain.Folder {
	color := record.Color
	if color == "" {
		color = domain.DefaultFolderColor
	}
	return domain.Folder{ID: record.ID, Name: record.Name, Color: color}
}

// FoldersToRecords converts a slice of domain Folders to records.
func (m *Mapper) FoldersToRecords(folders []domain.Folder) []FolderRecord {
	records := make([]FolderRecord, len(folders))
	for i, folder := range folders {
		records[i] = m.FolderToRecord(folder)
	}
	return records
}

// FoldersFromRecords converts records to domain Folders.
func (m *Mapper) FoldersFromRecords(records []FolderRecord) []domain.Folder {
	folders := make([]domain.Folder, len(records))
	for i, record := range records {
		folders[i] = m.FolderFromRecord(record)
	}
	return folders
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func (m *Mapper) parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(m.loc), nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, m.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (m *Mapper) parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := m.parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
