package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo-manager/internal/api"
	"todo-manager/internal/config"
	"todo-manager/internal/dates"
	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
	"todo-manager/internal/services"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

// Model is the interactive task list.
type Model struct {
	ctx        context.Context
	api        api.API
	cfg        *config.Config
	loc        *time.Location
	tasks      []domain.Task
	folders    []domain.Folder
	counts     services.Counts
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *domain.Task
}

// NewModel builds a model over a loaded store.
func NewModel(ctx context.Context, store api.API, cfg *config.Config) Model {
	loc, err := cfg.GetLocation()
	if err != nil {
		loc = time.Local
	}

	ti := textinput.New()
	ti.Placeholder = "Task title @YYYY-MM-DD HH:MM"
	ti.CharLimit = cfg.Validation.TitleMaxLength + 20
	ti.Width = 40

	m := Model{
		ctx:    ctx,
		api:    store,
		cfg:    cfg,
		loc:    loc,
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to delete.", cfg.Keys.Add, keyName(cfg.Keys.Toggle), cfg.Keys.Delete),
	}
	m.refresh()
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, store api.API, cfg *config.Config) error {
	program := tea.NewProgram(NewModel(ctx, store, cfg), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		input, err := m.parseAddInput(m.input.Value())
		if err != nil {
			m.status = errors.GetUserMessage(err)
			return m, nil
		}

		ctx, cancel := m.commandContext()
		defer cancel()
		task, err := m.api.AddTask(ctx, input)
		if err != nil {
			m.status = fmt.Sprintf("add failed: %s", errors.GetUserMessage(err))
			if task == nil {
				return m, nil
			}
		} else {
			m.status = fmt.Sprintf("Added %q", task.Title)
		}

		m.refresh()
		m.cursor = m.indexOf(task.ID)
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case m.cfg.Keys.NextCategory, "right":
		m.switchCategory(1)
	case m.cfg.Keys.PrevCategory, "left":
		m.switchCategory(-1)
	case m.cfg.Keys.NextFolder:
		m.cycleFolder()
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Focus()
		m.status = "Add mode: type a title and press Enter"
	case m.cfg.Keys.Toggle:
		if len(m.tasks) == 0 {
			return m, nil
		}
		ctx, cancel := m.commandContext()
		defer cancel()
		task, err := m.api.ToggleTask(ctx, m.tasks[m.cursor].ID)
		switch {
		case err != nil:
			m.status = fmt.Sprintf("toggle failed: %s", errors.GetUserMessage(err))
		case task.Completed:
			m.status = fmt.Sprintf("Completed %q", task.Title)
		default:
			m.status = fmt.Sprintf("Reopened %q", task.Title)
		}
		m.refresh()
	case m.cfg.Keys.Delete:
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? %s/n", t.Title, m.cfg.Keys.Confirm)
	case m.cfg.Keys.Detail:
		if len(m.tasks) == 0 {
			m.status = "No tasks"
			return m, nil
		}
		m.status = m.detail(m.tasks[m.cursor])
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Confirm, "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		ctx, cancel := m.commandContext()
		defer cancel()
		if err := m.api.DeleteTask(ctx, m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %s", errors.GetUserMessage(err))
		} else {
			m.status = fmt.Sprintf("Deleted %q", m.pendingDel.Title)
		}
		m.refresh()
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case m.cfg.Keys.Cancel, "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderFolderLine())
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.api.ActiveCategory().EmptyMessage())
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n---\n")
	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

// refresh re-reads the active view and its badges from the store.
func (m *Model) refresh() {
	m.tasks = m.api.ActiveView()
	m.folders = m.api.Folders()
	m.counts = m.api.Counts()
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func (m *Model) switchCategory(step int) {
	current := m.api.ActiveCategory()
	idx := 0
	for i, c := range domain.Categories {
		if c == current {
			idx = i
			break
		}
	}
	next := domain.Categories[wrapIndex(idx+step, len(domain.Categories))]
	m.api.SetActiveCategory(next)
	m.cursor = 0
	m.refresh()
	m.status = next.Label()
}

// cycleFolder walks all tasks, then each folder in order, then back.
func (m *Model) cycleFolder() {
	active := m.api.ActiveFolder()
	var next *string
	if len(m.folders) > 0 {
		if active == nil {
			next = &m.folders[0].ID
		} else {
			for i, f := range m.folders {
				if f.ID == *active && i+1 < len(m.folders) {
					id := m.folders[i+1].ID
					next = &id
					break
				}
			}
		}
	}
	if err := m.api.SetActiveFolder(next); err != nil {
		m.status = errors.GetUserMessage(err)
		return
	}
	m.cursor = 0
	m.refresh()
	if next == nil {
		m.status = "All folders"
		return
	}
	if folder, err := m.api.Folder(*next); err == nil {
		m.status = "Folder: " + folder.Name
	}
}

// parseAddInput splits "title @YYYY-MM-DD [HH:MM]" into a task input. New
// tasks land in the folder being viewed.
func (m Model) parseAddInput(raw string) (domain.TaskInput, error) {
	title := strings.TrimSpace(raw)
	var due *time.Time

	if at := strings.LastIndex(title, " @"); at >= 0 {
		parts := strings.Fields(title[at+2:])
		if len(parts) >= 1 && len(parts) <= 2 {
			var clockTime string
			if len(parts) == 2 {
				clockTime = parts[1]
			}
			parsed, err := dates.ParseDue(parts[0], clockTime, m.loc)
			if err != nil {
				return domain.TaskInput{}, err
			}
			due = parsed
			title = strings.TrimSpace(title[:at])
		}
	}

	input := domain.TaskInput{Title: title, DueDate: due}
	if active := m.api.ActiveFolder(); active != nil {
		id := *active
		input.FolderID = &id
	}
	return input, nil
}

func (m Model) commandContext() (context.Context, context.CancelFunc) {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, m.cfg.Application.Timeout)
}

func (m Model) indexOf(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return clampCursor(m.cursor, len(m.tasks))
}

func (m Model) renderTabs() string {
	active := m.api.ActiveCategory()
	tabs := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		label := fmt.Sprintf("%s %d", c.Label(), m.counts.Category(c))
		if c == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderFolderLine() string {
	active := m.api.ActiveFolder()
	if active == nil {
		return helpStyle.Render(fmt.Sprintf("All folders · %d unfiled", m.counts.Unfiled))
	}
	for _, f := range m.folders {
		if f.ID == *active {
			return folderBadge(fmt.Sprintf("%s %d", f.Name, m.counts.Folder(f.ID)), f.Color)
		}
	}
	return ""
}

func (m Model) renderTaskList() string {
	now := m.api.Now()
	folderNames := make(map[string]domain.Folder, len(m.folders))
	for _, f := range m.folders {
		folderNames[f.ID] = f
	}

	var b strings.Builder
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		line := fmt.Sprintf("%s %s", check, t.Title)
		switch {
		case t.Completed:
			line = doneStyle.Render(line)
		case i == m.cursor:
			line = selectedStyle.Render(line)
		}

		b.WriteString(cursor)
		b.WriteString(line)
		if t.FolderID != nil {
			if f, ok := folderNames[*t.FolderID]; ok && m.api.ActiveFolder() == nil {
				b.WriteString(" ")
				b.WriteString(folderBadge(f.Name, f.Color))
			}
		}
		if t.DueDate != nil {
			due := t.DueDate.In(m.loc)
			when := fmt.Sprintf(" %s %s", dates.FormatRelative(due, now.In(m.loc)), due.Format(m.cfg.Time.TimeFormat))
			if !t.Completed {
				remaining := dates.FormatRemaining(due, now)
				when += " · " + remaining
				if remaining == dates.OverdueText {
					when = overdueStyle.Render(when)
				}
			}
			b.WriteString(when)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) detail(t domain.Task) string {
	info := t.Title
	if t.Memo != "" {
		info += " • " + strings.ReplaceAll(t.Memo, "\n", " ")
	}
	if t.DueDate != nil {
		info += " • due " + dates.FormatDateTime(*t.DueDate, m.loc)
	}
	if t.FolderID != nil {
		if f, err := m.api.Folder(*t.FolderID); err == nil {
			info += " • " + f.Name
		}
	}
	if t.Completed && t.CompletedAt != nil {
		info += " • done " + dates.FormatDateTime(*t.CompletedAt, m.loc)
	}
	return info
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s/%s category • %s folder • %s add • %s detail • %s toggle • %s delete • %s quit",
		k.Up, k.Down, k.NextCategory, k.PrevCategory, k.NextFolder, k.Add, k.Detail, keyName(k.Toggle), k.Delete, k.Quit)
}

func keyName(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n == 0 {
		return 0
	}
	return ((idx % n) + n) % n
}
