package cli

import (
	"context"
	"fmt"

	"todo-manager/internal/dates"
	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
)

// EditCommand handles the edit command. Only flags the user set are applied.
type EditCommand struct {
	app      *App
	Title    *string
	Memo     *string
	Due      *string
	At       *string
	ClearDue bool
	Folder   *string
	Unfile   bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute edits the task named by args[0].
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: todo edit <id> [flags]")
	}
	api := c.app.api

	id, err := api.ResolveTaskID(args[0])
	if err != nil {
		return NewErrorHandler().Handle("edit task", err)
	}

	patch, err := c.buildPatch(id)
	if err != nil {
		return NewErrorHandler().Handle("edit task", err)
	}
	if patch.IsEmpty() {
		fmt.Fprintln(c.app.out, "Nothing to change.")
		return nil
	}

	task, err := api.EditTask(ctx, id, patch)
	if err != nil {
		return NewErrorHandler().Handle("edit task", err)
	}

	fmt.Fprintf(c.app.out, "Updated task %s: %s\n", ShortID(task.ID), task.Title)
	return nil
}

func (c *EditCommand) buildPatch(id string) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:    c.Title,
		Memo:     c.Memo,
		ClearDue: c.ClearDue,
		Unfile:   c.Unfile,
	}

	if !c.ClearDue && (c.Due != nil || c.At != nil) {
		date, clockTime, err := c.dueParts(id)
		if err != nil {
			return patch, err
		}
		due, err := c.app.parseDue(date, clockTime)
		if err != nil {
			return patch, err
		}
		if due == nil {
			patch.ClearDue = true
		} else {
			patch.DueDate = due
		}
	}

	if !c.Unfile && c.Folder != nil {
		folderID, err := c.app.api.ResolveFolderID(*c.Folder)
		if err != nil {
			return patch, err
		}
		patch.FolderID = &folderID
	}

	return patch, nil
}

// dueParts fills in the half of the deadline the user did not pass from the
// task's current deadline.
func (c *EditCommand) dueParts(id string) (string, string, error) {
	var date, clockTime string
	if c.Due != nil {
		date = *c.Due
	}
	if c.At != nil {
		clockTime = *c.At
	}
	if c.Due != nil && c.At != nil {
		return date, clockTime, nil
	}

	task, err := c.app.api.Task(id)
	if err != nil {
		return "", "", err
	}
	if task.DueDate == nil {
		return date, clockTime, nil
	}
	current := task.DueDate.In(c.app.loc)
	if c.Due == nil {
		date = current.Format(dates.DateLayout)
	}
	if c.At == nil && date != "" {
		clockTime = current.Format(dates.TimeLayout)
	}
	return date, clockTime, nil
}
