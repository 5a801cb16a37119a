package api

import (
	"strings"

	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
	"todo-manager/internal/services"
)

// Queries hand out deep copies; mutating them never reaches the store.

func (a *apiImpl) Tasks() []domain.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneTasks(a.tasks)
}

func (a *apiImpl) Folders() []domain.Folder {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneFolders(a.folders)
}

func (a *apiImpl) Task(id string) (*domain.Task, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i := a.taskIndex(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	out := a.tasks[i].Clone()
	return &out, nil
}

func (a *apiImpl) Folder(id string) (*domain.Folder, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i, ok := a.folderIndex[id]
	if !ok {
		return nil, errors.NewNotFoundError("folder", id)
	}
	out := a.folders[i]
	return &out, nil
}

// ResolveTaskID expands a unique id prefix to the full task id. An exact
// match always wins.
func (a *apiImpl) ResolveTaskID(prefix string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]string, len(a.tasks))
	for i, task := range a.tasks {
		ids[i] = task.ID
	}
	return resolvePrefix("task", prefix, ids)
}

// ResolveFolderID expands a unique id prefix to the full folder id.
func (a *apiImpl) ResolveFolderID(prefix string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]string, len(a.folders))
	for i, folder := range a.folders {
		ids[i] = folder.ID
	}
	return resolvePrefix("folder", prefix, ids)
}

func resolvePrefix(resource, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.NewInvalidInputError("id", prefix, "must not be empty")
	}

	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError(resource, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewAmbiguousError(resource, prefix, len(matches))
	}
}

// View returns the tasks of category, optionally limited to one folder,
// in display order.
func (a *apiImpl) View(category domain.Category, folderID *string) []domain.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view(category, folderID)
}

func (a *apiImpl) view(category domain.Category, folderID *string) []domain.Task {
	visible := services.FilterTasks(a.tasks, category, folderID, a.clock.Now())
	return cloneTasks(services.SortTasks(visible, category))
}

func (a *apiImpl) Counts() services.Counts {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return services.CountTasks(a.tasks, a.folders, a.clock.Now())
}

func (a *apiImpl) Dashboard() services.Dashboard {
	a.mu.RLock()
	defer a.mu.RUnlock()

	dashboard := services.BuildDashboard(a.tasks, a.clock.Now())
	dashboard.Today = cloneTasks(dashboard.Today)
	dashboard.Overdue = cloneTasks(dashboard.Overdue)
	return dashboard
}

func (a *apiImpl) ActiveCategory() domain.Category {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.activeCategory
}

// SetActiveCategory selects the category view. Unknown values select all.
func (a *apiImpl) SetActiveCategory(category domain.Category) {
	if !category.IsValid() {
		category = domain.CategoryAll
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.activeCategory = category
}

func (a *apiImpl) ActiveFolder() *string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.activeFolder == nil {
		return nil
	}
	id := *a.activeFolder
	return &id
}

// SetActiveFolder limits the active view to a folder; nil clears the limit.
func (a *apiImpl) SetActiveFolder(folderID *string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if folderID == nil {
		a.activeFolder = nil
		return nil
	}
	if _, ok := a.folderIndex[*folderID]; !ok {
		return errors.NewNotFoundError("folder", *folderID)
	}
	id := *folderID
	a.activeFolder = &id
	return nil
}

// ActiveView is View for the current selection.
func (a *apiImpl) ActiveView() []domain.Task {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view(a.activeCategory, a.activeFolder)
}
