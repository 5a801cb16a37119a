package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"todo-manager/internal/errors"
	"todo-manager/internal/storage"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app    *App
	Key    string
	Format string
	List   bool
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, Key: storage.TasksKey, Format: "json"}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, _ []string) error {
	if c.List {
		return c.listDocuments(ctx)
	}
	if c.Key != storage.TasksKey && c.Key != storage.FoldersKey {
		return errors.NewInvalidInputError("key", c.Key, "expected todos or folders")
	}

	switch c.Format {
	case "json":
		return c.outputJSON(ctx)
	case "csv":
		if c.Key == storage.FoldersKey {
			return c.outputFoldersCSV()
		}
		return c.outputTasksCSV()
	default:
		return errors.NewInvalidInputError("format", c.Format, "unsupported format")
	}
}

// listDocuments prints the key of every stored document.
func (c *ExportCommand) listDocuments(ctx context.Context) error {
	if c.app.docs == nil {
		return fmt.Errorf("export is not available")
	}
	keys, err := c.app.docs.Documents(ctx)
	if err != nil {
		return NewErrorHandler().Handle("list documents", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(c.app.out, "Nothing stored yet.")
		return nil
	}
	for _, key := range keys {
		fmt.Fprintln(c.app.out, key)
	}
	return nil
}

// outputJSON writes the stored document unchanged.
func (c *ExportCommand) outputJSON(ctx context.Context) error {
	if c.app.docs == nil {
		return fmt.Errorf("export is not available")
	}
	raw, err := c.app.docs.Export(ctx, c.Key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return fmt.Errorf("nothing stored under %s yet", c.Key)
		}
		return NewErrorHandler().Handle("export "+c.Key, err)
	}
	if _, err := c.app.out.Write(raw); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintln(c.app.out)
	return nil
}

// outputTasksCSV writes every task, folder names resolved.
func (c *ExportCommand) outputTasksCSV() error {
	writer := csv.NewWriter(c.app.out)
	defer writer.Flush()

	header := []string{"ID", "Title", "Memo", "Folder", "Due", "Completed", "Created At", "Completed At"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	folders := folderMap(c.app.api.Folders())
	for _, task := range c.app.api.Tasks() {
		var folderName, due, completedAt string
		if task.FolderID != nil {
			folderName = folders[*task.FolderID].Name
		}
		if task.DueDate != nil {
			due = task.DueDate.In(c.app.loc).Format(time.RFC3339)
		}
		if task.CompletedAt != nil {
			completedAt = task.CompletedAt.In(c.app.loc).Format(time.RFC3339)
		}

		row := []string{
			task.ID,
			task.Title,
			task.Memo,
			folderName,
			due,
			strconv.FormatBool(task.Completed),
			task.CreatedAt.In(c.app.loc).Format(time.RFC3339),
			completedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (c *ExportCommand) outputFoldersCSV() error {
	writer := csv.NewWriter(c.app.out)
	defer writer.Flush()

	if err := writer.Write([]string{"ID", "Name", "Color"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, folder := range c.app.api.Folders() {
		if err := writer.Write([]string{folder.ID, folder.Name, folder.Color}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ImportCommand replaces a stored document with the contents of a file.
type ImportCommand struct {
	app *App
	Key string
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app, Key: storage.TasksKey}
}

// Execute imports args[0]; "-" reads standard input.
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("file", args, "usage: todo import <file|-> [--key todos|folders]")
	}
	if c.Key != storage.TasksKey && c.Key != storage.FoldersKey {
		return errors.NewInvalidInputError("key", c.Key, "expected todos or folders")
	}
	if c.app.docs == nil {
		return fmt.Errorf("import is not available")
	}

	var raw []byte
	var err error
	if args[0] == "-" {
		raw, err = io.ReadAll(c.app.in)
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if err := c.app.docs.Import(ctx, c.Key, raw); err != nil {
		return NewErrorHandler().Handle("import "+c.Key, err)
	}
	if err := c.app.api.Load(ctx); err != nil {
		return NewErrorHandler().Handle("reload", err)
	}

	fmt.Fprintf(c.app.out, "Imported %s from %s\n", c.Key, args[0])
	return nil
}

// ResetCommand removes the stored documents and reloads the store.
type ResetCommand struct {
	app *App
	Yes bool
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(app *App) *ResetCommand {
	return &ResetCommand{app: app}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context, _ []string) error {
	if c.app.docs == nil {
		return fmt.Errorf("reset is not available")
	}
	if !c.Yes && !confirm(c.app, "Remove all stored tasks and folders?") {
		fmt.Fprintln(c.app.out, "Reset cancelled.")
		return nil
	}

	if err := c.app.docs.Reset(ctx); err != nil {
		return NewErrorHandler().Handle("reset", err)
	}
	if err := c.app.api.Load(ctx); err != nil {
		return NewErrorHandler().Handle("reload", err)
	}

	fmt.Fprintf(c.app.out, "Removed stored data. %d tasks loaded.\n", len(c.app.api.Tasks()))
	return nil
}
