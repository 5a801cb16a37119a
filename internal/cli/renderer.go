package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todo-manager/internal/config"
	"todo-manager/internal/dates"
	"todo-manager/internal/domain"
	"todo-manager/internal/services"
)

// ShortIDLength is how many characters of an id the list views print.
const ShortIDLength = 8

// Renderer writes human readable views of tasks and folders.
type Renderer struct {
	w      io.Writer
	config *config.Config
	loc    *time.Location
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, cfg *config.Config, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{w: w, config: cfg, loc: loc}
}

// ShortID trims an id to ShortIDLength characters.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// TaskLine renders a single task on one line:
// [x] id title (folder) due HH:MM · remaining
func (r *Renderer) TaskLine(task domain.Task, folders map[string]domain.Folder, now time.Time) string {
	var b strings.Builder

	if task.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(ShortID(task.ID))
	b.WriteString(" ")
	b.WriteString(task.Title)

	if task.FolderID != nil {
		if folder, ok := folders[*task.FolderID]; ok {
			fmt.Fprintf(&b, " (%s)", folder.Name)
		}
	}

	if task.DueDate != nil {
		due := task.DueDate.In(r.loc)
		fmt.Fprintf(&b, " %s %s", dates.FormatRelative(due, now.In(r.loc)), due.Format(r.timeLayout()))
		if !task.Completed {
			fmt.Fprintf(&b, " · %s", dates.FormatRemaining(due, now))
		}
	}

	return b.String()
}

// Tasks renders a category listing, or its empty message.
func (r *Renderer) Tasks(category domain.Category, tasks []domain.Task, folders []domain.Folder, now time.Time) {
	fmt.Fprintf(r.w, "%s (%d)\n", category.Label(), len(tasks))
	if len(tasks) == 0 {
		fmt.Fprintln(r.w, category.EmptyMessage())
		return
	}

	index := folderMap(folders)
	for _, task := range tasks {
		fmt.Fprintln(r.w, r.TaskLine(task, index, now))
		if r.config != nil && r.config.Display.ShowMemo && task.Memo != "" {
			fmt.Fprintf(r.w, "      %s\n", firstLine(task.Memo))
		}
	}
}

// TaskDetail renders every field of a task.
func (r *Renderer) TaskDetail(task domain.Task, folder *domain.Folder, now time.Time) {
	fmt.Fprintf(r.w, "ID:        %s\n", task.ID)
	fmt.Fprintf(r.w, "Title:     %s\n", task.Title)
	if task.Memo != "" {
		fmt.Fprintf(r.w, "Memo:      %s\n", task.Memo)
	}
	if folder != nil {
		fmt.Fprintf(r.w, "Folder:    %s\n", folder.Name)
	}
	if task.DueDate != nil {
		fmt.Fprintf(r.w, "Due:       %s (%s)\n", r.formatDateTime(*task.DueDate), dates.FormatRelative(task.DueDate.In(r.loc), now.In(r.loc)))
		if !task.Completed {
			fmt.Fprintf(r.w, "Remaining: %s\n", dates.FormatRemaining(*task.DueDate, now))
		}
	}
	fmt.Fprintf(r.w, "Created:   %s\n", r.formatDateTime(task.CreatedAt))
	if task.Completed && task.CompletedAt != nil {
		fmt.Fprintf(r.w, "Completed: %s\n", r.formatDateTime(*task.CompletedAt))
	}
}

// Folders renders folders with their open task counts.
func (r *Renderer) Folders(folders []domain.Folder, counts services.Counts) {
	if len(folders) == 0 {
		fmt.Fprintln(r.w, "No folders.")
		return
	}
	for _, folder := range folders {
		fmt.Fprintf(r.w, "%s %-20s %s %d\n", ShortID(folder.ID), folder.Name, folder.Color, counts.Folder(folder.ID))
	}
}

// Counts renders the category and folder badges.
func (r *Renderer) Counts(counts services.Counts, folders []domain.Folder) {
	for _, category := range domain.Categories {
		fmt.Fprintf(r.w, "%-10s %d\n", category.Label(), counts.Category(category))
	}
	if len(folders) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	for _, folder := range folders {
		fmt.Fprintf(r.w, "%-10s %d\n", folder.Name, counts.Folder(folder.ID))
	}
	fmt.Fprintf(r.w, "%-10s %d\n", "Unfiled", counts.Unfiled)
}

// Dashboard renders today's schedule and an overdue preview capped at limit.
func (r *Renderer) Dashboard(dashboard services.Dashboard, limit int, folders []domain.Folder, now time.Time) {
	index := folderMap(folders)

	fmt.Fprintf(r.w, "%s\n", dates.FormatLong(now, r.loc))
	fmt.Fprintf(r.w, "Pending: %d  Completed today: %d\n\n", dashboard.Pending, dashboard.CompletedToday)

	fmt.Fprintf(r.w, "Today (%d)\n", len(dashboard.Today))
	if len(dashboard.Today) == 0 {
		fmt.Fprintln(r.w, domain.CategoryToday.EmptyMessage())
	}
	for _, task := range dashboard.Today {
		fmt.Fprintln(r.w, r.TaskLine(task, index, now))
	}

	if len(dashboard.Overdue) == 0 {
		return
	}
	fmt.Fprintf(r.w, "\nOverdue (%d)\n", len(dashboard.Overdue))
	preview, hidden := dashboard.OverduePreview(limit)
	for _, task := range preview {
		fmt.Fprintln(r.w, r.TaskLine(task, index, now))
	}
	if hidden > 0 {
		fmt.Fprintf(r.w, "+%d more\n", hidden)
	}
}

func (r *Renderer) formatDateTime(t time.Time) string {
	return t.In(r.loc).Format(r.dateLayout() + " " + r.timeLayout())
}

func (r *Renderer) dateLayout() string {
	if r.config != nil && r.config.Time.DateFormat != "" {
		return r.config.Time.DateFormat
	}
	return dates.DateLayout
}

func (r *Renderer) timeLayout() string {
	if r.config != nil && r.config.Time.TimeFormat != "" {
		return r.config.Time.TimeFormat
	}
	return dates.TimeLayout
}

func folderMap(folders []domain.Folder) map[string]domain.Folder {
	index := make(map[string]domain.Folder, len(folders))
	for _, folder := range folders {
		index[folder.ID] = folder
	}
	return index
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
