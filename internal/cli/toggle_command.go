package cli

import (
	"context"
	"fmt"

	"todo-manager/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the completion state of every task named in args.
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("id", "", "usage: todo toggle <id>...")
	}

	for _, arg := range args {
		id, err := c.app.api.ResolveTaskID(arg)
		if err != nil {
			return NewErrorHandler().Handle("toggle task", err)
		}
		task, err := c.app.api.ToggleTask(ctx, id)
		if err != nil {
			return NewErrorHandler().Handle("toggle task", err)
		}
		state := "open"
		if task.Completed {
			state = "done"
		}
		fmt.Fprintf(c.app.out, "Marked %s %s: %s\n", ShortID(task.ID), state, task.Title)
	}
	return nil
}
