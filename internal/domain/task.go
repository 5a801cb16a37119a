package domain

import (
	"strings"
	"time"
)

// Task represents a todo item in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string
	Title       string
	Memo        string
	DueDate     *time.Time
	FolderID    *string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewTask creates an incomplete Task from the given input.
func NewTask(id string, input TaskInput, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Title:     strings.TrimSpace(input.Title),
		Memo:      strings.TrimSpace(input.Memo),
		DueDate:   copyTime(input.DueDate),
		FolderID:  copyString(input.FolderID),
		CreatedAt: createdAt,
	}
}

// HasDueDate reports whether the task carries a deadline.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsUnfiled reports whether the task belongs to no folder.
func (t Task) IsUnfiled() bool {
	return t.FolderID == nil
}

// InFolder reports whether the task is assigned to folderID.
func (t Task) InFolder(folderID string) bool {
	return t.FolderID != nil && *t.FolderID == folderID
}

// Toggle flips the completion state. completedAt follows completed.
func (t Task) Toggle(now time.Time) Task {
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return t
}

// Apply returns the task with every non-nil patch field applied.
func (t Task) Apply(patch TaskPatch) Task {
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Memo != nil {
		t.Memo = strings.TrimSpace(*patch.Memo)
	}
	if patch.ClearDue {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		t.DueDate = copyTime(patch.DueDate)
	}
	if patch.Unfile {
		t.FolderID = nil
	} else if patch.FolderID != nil {
		t.FolderID = copyString(patch.FolderID)
	}
	return t
}

// Normalize repairs the completedAt invariant of a task read from storage.
func (t Task) Normalize() Task {
	if t.Completed && t.CompletedAt == nil {
		created := t.CreatedAt
		t.CompletedAt = &created
	}
	if !t.Completed {
		t.CompletedAt = nil
	}
	return t
}

// Clone returns a deep copy so callers cannot reach the original's pointers.
func (t Task) Clone() Task {
	t.DueDate = copyTime(t.DueDate)
	t.FolderID = copyString(t.FolderID)
	t.CompletedAt = copyTime(t.CompletedAt)
	return t
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskInput carries the fields of a task to be created.
type TaskInput struct {
	Title    string
	Memo     string
	DueDate  *time.Time
	FolderID *string
}

// TaskPatch is a field-level update. Nil fields are left untouched.
// Completion is changed through Toggle only.
type TaskPatch struct {
	Title    *string
	Memo     *string
	DueDate  *time.Time
	ClearDue bool
	FolderID *string
	Unfile   bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Memo == nil && p.DueDate == nil && !p.ClearDue &&
		p.FolderID == nil && !p.Unfile
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
