package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-manager/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	Yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	return c.deleteTask(ctx, args)
}

// deleteTask asks for confirmation unless Yes is set, then removes the task.
func (c *DeleteCommand) deleteTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: todo delete <id> [--yes]")
	}

	id, err := c.app.api.ResolveTaskID(args[0])
	if err != nil {
		return NewErrorHandler().Handle("delete task", err)
	}
	task, err := c.app.api.Task(id)
	if err != nil {
		return NewErrorHandler().Handle("delete task", err)
	}

	if !c.Yes && !confirm(c.app, fmt.Sprintf("Delete task %q?", task.Title)) {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}

	if err := c.app.api.DeleteTask(ctx, id); err != nil {
		return NewErrorHandler().Handle("delete task", err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", task.Title)
	return nil
}

// confirm prints prompt and reads a y/N answer from the application input.
func confirm(app *App, prompt string) bool {
	fmt.Fprintf(app.out, "%s [y/N]: ", prompt)

	var input string
	fmt.Fscanln(app.in, &input)
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}
