package api

import (
	"context"
	stderrors "errors"

	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
	"todo-manager/internal/validation"
)

// Every command runs to completion under the write lock and then saves the
// collections it touched. When the save fails the in-memory change is kept
// and the storage error is returned next to the result.

func (a *apiImpl) AddTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskInput(input); err != nil {
		return nil, invalid(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireFolder(input.FolderID); err != nil {
		return nil, err
	}

	task := domain.NewTask(a.newID(), input, a.clock.Now())
	a.tasks = append([]domain.Task{task}, a.tasks...)
	a.logger.Debugf(ctx, "added task %s", task.ID)

	out := task.Clone()
	return &out, a.saveTasks(ctx)
}

func (a *apiImpl) EditTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskPatch(patch); err != nil {
		return nil, invalid(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.taskIndex(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	if patch.IsEmpty() {
		out := a.tasks[i].Clone()
		return &out, nil
	}
	if !patch.Unfile {
		if err := a.requireFolder(patch.FolderID); err != nil {
			return nil, err
		}
	}

	a.tasks[i] = a.tasks[i].Apply(patch)
	a.logger.Debugf(ctx, "edited task %s", id)

	out := a.tasks[i].Clone()
	return &out, a.saveTasks(ctx)
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.taskIndex(id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}

	a.tasks = append(a.tasks[:i:i], a.tasks[i+1:]...)
	a.logger.Debugf(ctx, "deleted task %s", id)

	return a.saveTasks(ctx)
}

func (a *apiImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := a.taskIndex(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}

	a.tasks[i] = a.tasks[i].Toggle(a.clock.Now())
	a.logger.Debugf(ctx, "toggled task %s to completed=%t", id, a.tasks[i].Completed)

	out := a.tasks[i].Clone()
	return &out, a.saveTasks(ctx)
}

func (a *apiImpl) AddFolder(ctx context.Context, input domain.FolderInput) (*domain.Folder, error) {
	if err := a.folderValidator.ValidateFolderInput(input); err != nil {
		return nil, invalid(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if input.Color == "" {
		input.Color = domain.NextFolderColor(a.folders)
	}
	folder := domain.NewFolder(a.newID(), input)
	a.folders = append(a.folders, folder)
	a.folderIndex[folder.ID] = len(a.folders) - 1
	a.logger.Debugf(ctx, "added folder %s", folder.ID)

	out := folder
	return &out, a.saveFolders(ctx)
}

func (a *apiImpl) EditFolder(ctx context.Context, id string, patch domain.FolderPatch) (*domain.Folder, error) {
	if err := a.folderValidator.ValidateFolderPatch(patch); err != nil {
		return nil, invalid(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.folderIndex[id]
	if !ok {
		return nil, errors.NewNotFoundError("folder", id)
	}
	if patch.IsEmpty() {
		out := a.folders[i]
		return &out, nil
	}

	a.folders[i] = a.folders[i].Apply(patch)
	a.logger.Debugf(ctx, "edited folder %s", id)

	out := a.folders[i]
	return &out, a.saveFolders(ctx)
}

// DeleteFolder removes the folder and moves its tasks to unfiled. It returns
// how many tasks were moved.
func (a *apiImpl) DeleteFolder(ctx context.Context, id string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.folderIndex[id]
	if !ok {
		return 0, errors.NewNotFoundError("folder", id)
	}

	a.folders = append(a.folders[:i:i], a.folders[i+1:]...)
	a.reindexFolders()

	moved := 0
	for j, task := range a.tasks {
		if task.InFolder(id) {
			a.tasks[j] = task.Apply(domain.TaskPatch{Unfile: true})
			moved++
		}
	}
	if a.activeFolder != nil && *a.activeFolder == id {
		a.activeFolder = nil
	}
	a.logger.Debugf(ctx, "deleted folder %s, %d tasks unfiled", id, moved)

	err := a.saveFolders(ctx)
	if moved > 0 {
		err = stderrors.Join(err, a.saveTasks(ctx))
	}
	return moved, err
}

// requireFolder rejects references to folders the store does not hold.
func (a *apiImpl) requireFolder(folderID *string) error {
	if folderID == nil {
		return nil
	}
	if _, ok := a.folderIndex[*folderID]; !ok {
		return errors.NewNotFoundError("folder", *folderID)
	}
	return nil
}

func (a *apiImpl) saveTasks(ctx context.Context) error {
	return a.docs.SaveTasks(ctx, a.tasks)
}

func (a *apiImpl) saveFolders(ctx context.Context) error {
	return a.docs.SaveFolders(ctx, a.folders)
}

func invalid(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.AppError()
	}
	return err
}
