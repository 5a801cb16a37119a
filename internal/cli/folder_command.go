package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-manager/internal/domain"
	"todo-manager/internal/errors"
)

// FolderListCommand prints every folder with its open task count.
type FolderListCommand struct {
	app *App
}

// NewFolderListCommand creates a new folder list handler
func NewFolderListCommand(app *App) *FolderListCommand {
	return &FolderListCommand{app: app}
}

// Execute runs the folder list command
func (c *FolderListCommand) Execute(ctx context.Context, _ []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.app.renderer().Folders(c.app.api.Folders(), c.app.api.Counts())
	return nil
}

// FolderAddCommand creates a folder.
type FolderAddCommand struct {
	app   *App
	Color string
}

// NewFolderAddCommand creates a new folder add handler
func NewFolderAddCommand(app *App) *FolderAddCommand {
	return &FolderAddCommand{app: app}
}

// Execute creates a folder named with the joined arguments.
func (c *FolderAddCommand) Execute(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errors.NewInvalidInputError("name", "", "usage: todo folder add <name> [--color #RRGGBB]")
	}

	folder, err := c.app.api.AddFolder(ctx, domain.FolderInput{Name: name, Color: c.Color})
	if err != nil {
		return NewErrorHandler().Handle("add folder", err)
	}

	fmt.Fprintf(c.app.out, "Added folder %s: %s\n", ShortID(folder.ID), folder.Name)
	return nil
}

// FolderEditCommand renames or recolors a folder.
type FolderEditCommand struct {
	app   *App
	Name  *string
	Color *string
}

// NewFolderEditCommand creates a new folder edit handler
func NewFolderEditCommand(app *App) *FolderEditCommand {
	return &FolderEditCommand{app: app}
}

// Execute runs the folder edit command
func (c *FolderEditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: todo folder edit <id> [--name NAME] [--color #RRGGBB]")
	}

	id, err := c.app.api.ResolveFolderID(args[0])
	if err != nil {
		return NewErrorHandler().Handle("edit folder", err)
	}

	patch := domain.FolderPatch{Name: c.Name, Color: c.Color}
	if patch.IsEmpty() {
		fmt.Fprintln(c.app.out, "Nothing to change.")
		return nil
	}

	folder, err := c.app.api.EditFolder(ctx, id, patch)
	if err != nil {
		return NewErrorHandler().Handle("edit folder", err)
	}

	fmt.Fprintf(c.app.out, "Updated folder %s: %s\n", ShortID(folder.ID), folder.Name)
	return nil
}

// FolderDeleteCommand removes a folder. Its tasks become unfiled.
type FolderDeleteCommand struct {
	app *App
	Yes bool
}

// NewFolderDeleteCommand creates a new folder delete handler
func NewFolderDeleteCommand(app *App) *FolderDeleteCommand {
	return &FolderDeleteCommand{app: app}
}

// Execute runs the folder delete command
func (c *FolderDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "usage: todo folder delete <id> [--yes]")
	}

	id, err := c.app.api.ResolveFolderID(args[0])
	if err != nil {
		return NewErrorHandler().Handle("delete folder", err)
	}
	folder, err := c.app.api.Folder(id)
	if err != nil {
		return NewErrorHandler().Handle("delete folder", err)
	}

	prompt := fmt.Sprintf("Delete folder %q? Its tasks will be kept without a folder.", folder.Name)
	if !c.Yes && !confirm(c.app, prompt) {
		fmt.Fprintln(c.app.out, "Delete cancelled.")
		return nil
	}

	moved, err := c.app.api.DeleteFolder(ctx, id)
	if err != nil {
		return NewErrorHandler().Handle("delete folder", err)
	}

	fmt.Fprintf(c.app.out, "Deleted folder: %s (%d tasks unfiled)\n", folder.Name, moved)
	return nil
}
