package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app    *App
	Memo   string
	Due    string
	At     string
	Folder string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task titled with the joined arguments.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errors.NewInvalidInputError("title", "", "usage: todo add <title> [--due YYYY-MM-DD] [--at HH:MM]")
	}

	due, err := c.app.parseDue(c.Due, c.At)
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}

	input := domain.TaskInput{
		Title:   title,
		Memo:    c.Memo,
		DueDate: due,
	}
	if c.Folder != "" {
		folderID, err := c.app.api.ResolveFolderID(c.Folder)
		if err != nil {
			return NewErrorHandler().Handle("add task", err)
		}
		input.FolderID = &folderID
	}

	task, err := c.app.api.AddTask(ctx, input)
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %s: %s\n", ShortID(task.ID), task.Title)
	return nil
}
