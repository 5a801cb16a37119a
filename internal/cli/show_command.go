package cli

import (
	"context"

	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
)

// ShowCommand prints every field of one task.
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: todo show <id>")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := c.app.api.ResolveTaskID(args[0])
	if err != nil {
		return NewErrorHandler().Handle("show task", err)
	}
	task, err := c.app.api.Task(id)
	if err != nil {
		return NewErrorHandler().Handle("show task", err)
	}

	var folder *domain.Folder
	if task.FolderID != nil {
		folder, _ = c.app.api.Folder(*task.FolderID)
	}

	c.app.renderer().TaskDetail(*task, folder, c.app.api.Now())
	return nil
}
