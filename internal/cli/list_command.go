package cli

import (
	"context"

	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
)

// ListCommand handles the list command
type ListCommand struct {
	app      *App
	Category string
	Folder   string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command. An optional argument names the category.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && c.Category == "" {
		c.Category = args[0]
	}
	return c.listTasks(ctx)
}

// listTasks selects the category and folder, then prints the active view.
func (c *ListCommand) listTasks(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	api := c.app.api

	if c.Category != "" {
		category, err := domain.ParseCategory(c.Category)
		if err != nil {
			return NewErrorHandler().Handle("list tasks",
				errors.NewInvalidInputError("category", c.Category, "expected one of all, today, week, later, completed"))
		}
		api.SetActiveCategory(category)
	}

	if c.Folder != "" {
		folderID, err := api.ResolveFolderID(c.Folder)
		if err != nil {
			return NewErrorHandler().Handle("list tasks", err)
		}
		if err := api.SetActiveFolder(&folderID); err != nil {
			return NewErrorHandler().Handle("list tasks", err)
		}
	}

	c.app.renderer().Tasks(api.ActiveCategory(), api.ActiveView(), api.Folders(), api.Now())
	return nil
}
