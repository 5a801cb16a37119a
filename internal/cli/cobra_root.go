package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"todo-manager/internal/config"
	"todo-manager/internal/errors"
	"todo-manager/internal/logging"
	"todo-manager/internal/ui"
)

const storeAnnotation = "store"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	config    *config.Config
	app       *App
	session   *Session
	bootstrap Bootstrap
	in        io.Reader
	out       io.Writer
}

// RootOption configures a RootCommand.
type RootOption func(*RootCommand)

// WithBootstrap replaces the function that opens the store.
func WithBootstrap(bootstrap Bootstrap) RootOption {
	return func(r *RootCommand) { r.bootstrap = bootstrap }
}

// WithRootIO replaces stdin and stdout for every command.
func WithRootIO(in io.Reader, out io.Writer) RootOption {
	return func(r *RootCommand) {
		r.in = in
		r.out = out
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		bootstrap: NewBootstrap(nil),
		in:        os.Stdin,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A command-line todo manager",
		Long: `todo keeps a list of tasks with optional deadlines, sorted into folders
and viewed through time-based categories.

CATEGORIES:
  all        every open task
  today      open tasks due today
  week       open tasks due later this week (Sunday to Saturday)
  later      open tasks without a deadline or due after this week
  completed  finished tasks, most recent first

EXAMPLES:
  todo add "Write the report" --due 2024-05-03 --at 14:00 --folder work
  todo list today                          # Tasks due today
  todo list --folder work                  # Open tasks in the work folder
  todo toggle 3f2a                         # Complete a task by id prefix
  todo edit 3f2a --clear-due               # Remove a deadline
  todo folder add "Side project" --color "#B5D8FF"
  todo dashboard                           # Today's schedule and overdue tasks
  todo export --format csv > tasks.csv     # Export to CSV file
  todo tui                                 # Interactive mode

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is created as config.toml in the data directory on first run.

  Storage Configuration:
    TODO_STORAGE_DIR                       Data directory (default: ~/.todo)
    TODO_STORAGE_FILENAME                  Database filename (default: todo.db)
    TODO_STORAGE_QUERY_TIMEOUT             Read timeout (default: 10s)
    TODO_STORAGE_WRITE_TIMEOUT             Write timeout (default: 5s)

  Time Configuration:
    TODO_TIME_TIMEZONE                     IANA time zone or Local (default: Local)

  Display Configuration:
    TODO_DISPLAY_DEFAULT_CATEGORY          Category listed by default (default: all)
    TODO_DISPLAY_OVERDUE_LIMIT             Overdue tasks shown on the dashboard (default: 3)

  Application Configuration:
    TODO_APPLICATION_TIMEOUT               Command timeout (default: 60s)
    TODO_APPLICATION_VERBOSE               Enable debug logging (default: false)
    TODO_APPLICATION_SEED                  Start with sample data (default: true)

GETTING HELP:
  todo [command] --help                    # Get help for any specific command
  todo completion bash                     # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[storeAnnotation] == "" {
				return nil
			}
			return root.open()
		},
	}
	root.cmd.SetIn(root.in)
	root.cmd.SetOut(root.out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and closes the store afterwards.
func (r *RootCommand) Execute() error {
	defer r.close()
	return r.cmd.Execute()
}

// SetArgs sets the arguments used instead of os.Args.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("data-dir", "", "Data directory (overrides TODO_STORAGE_DIR)")
	flags.String("config", "", "Config file (default: <data-dir>/config.toml, created on first run)")
	flags.String("timezone", "", "Time zone used for deadlines (overrides TODO_TIME_TIMEZONE)")
	flags.Duration("timeout", 0, "Command timeout (overrides TODO_APPLICATION_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug logging (overrides TODO_APPLICATION_VERBOSE)")
	flags.Bool("seed", true, "Start with sample data when nothing is stored (overrides TODO_APPLICATION_SEED)")
}

// open loads configuration, applies flag overrides and opens the store.
func (r *RootCommand) open() error {
	if r.session != nil {
		return nil
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}
	r.config = cfg

	logger := logging.New(cfg.Application.Verbose)

	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()

	session, err := r.bootstrap(ctx, cfg, logger)
	if err != nil {
		if errors.ShouldLogError(err) {
			logger.Errorf(ctx, "opening %s failed: %v", cfg.GetDatabasePath(), err)
		}
		return NewErrorHandler().Handle("open task store", err)
	}
	r.session = session
	r.app = NewApp(session.API, cfg,
		WithDocuments(session.Docs),
		WithIO(r.in, r.out),
		WithAppLogger(logger),
	)
	return nil
}

func (r *RootCommand) loadConfig() (*config.Config, error) {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	loader := config.NewLoader()
	if flags.Changed("data-dir") {
		dir, _ := flags.GetString("data-dir")
		overrides.StorageDir = &dir
		loader = loader.WithConfigFile(filepath.Join(dir, config.DefaultConfigFileName))
	}
	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		loader = loader.WithConfigFile(path).WithoutFileCreation()
	}
	if flags.Changed("timezone") {
		tz, _ := flags.GetString("timezone")
		overrides.Timezone = &tz
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetBool("seed")
		overrides.Seed = &seed
	}

	cfg, err := loader.LoadWithOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (r *RootCommand) close() {
	if r.session == nil || r.session.Close == nil {
		return
	}
	if err := r.session.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close task store: %v\n", err)
	}
	r.session = nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// run wraps a handler constructor into a RunE bounded by the application timeout.
func (r *RootCommand) run(handler func(app *App) Handler) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
		defer cancel()

		if err := handler(r.app).Execute(ctx, args); err != nil {
			r.app.logger.Debugf(ctx, "%s failed: %v", cmd.CommandPath(), err)
			return err
		}
		return nil
	}
}

// Handler is implemented by every command handler.
type Handler interface {
	Execute(ctx context.Context, args []string) error
}

func storeCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[storeAnnotation] = "true"
	return cmd
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// List command
	var listCategory, listFolder string
	listCmd := storeCommand(&cobra.Command{
		Use:   "list [category]",
		Short: "List tasks",
		Long: `List tasks of a category, optionally limited to one folder.

Categories: all, today, week, later, completed

Examples:
  todo list                  # Default category (all)
  todo list today            # Tasks due today
  todo list -c week -f work  # This week's tasks in the work folder`,
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		RunE: r.run(func(app *App) Handler {
			h := NewListCommand(app)
			h.Category = listCategory
			h.Folder = listFolder
			return h
		}),
	})
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Category to list")
	listCmd.Flags().StringVarP(&listFolder, "folder", "f", "", "Folder id or id prefix")

	// Add command
	var addMemo, addDue, addAt, addFolder string
	addCmd := storeCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a task. A due date without --at defaults to 23:59 of that day.

Examples:
  todo add "Call the bank"
  todo add "Submit report" --due 2024-05-03 --at 17:00 --folder work`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Handler {
			h := NewAddCommand(app)
			h.Memo = addMemo
			h.Due = addDue
			h.At = addAt
			h.Folder = addFolder
			return h
		}),
	})
	addCmd.Flags().StringVarP(&addMemo, "memo", "m", "", "Free-form note")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addAt, "at", "t", "", "Due time (HH:MM)")
	addCmd.Flags().StringVarP(&addFolder, "folder", "f", "", "Folder id or id prefix")

	// Edit command
	editCmd := storeCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit the fields of a task. Only the flags you pass are changed.

Examples:
  todo edit 3f2a --title "New title"
  todo edit 3f2a --due 2024-05-10       # Keeps the current time of day
  todo edit 3f2a --clear-due --unfile`,
		Args: cobra.ExactArgs(1),
	})
	editFlags := editCmd.Flags()
	editFlags.String("title", "", "New title")
	editFlags.String("memo", "", "New memo")
	editFlags.String("due", "", "New due date (YYYY-MM-DD)")
	editFlags.String("at", "", "New due time (HH:MM)")
	editFlags.Bool("clear-due", false, "Remove the deadline")
	editFlags.String("folder", "", "Move to folder (id or id prefix)")
	editFlags.Bool("unfile", false, "Remove from its folder")
	editCmd.RunE = r.run(func(app *App) Handler {
		h := NewEditCommand(app)
		h.Title = changedString(editCmd, "title")
		h.Memo = changedString(editCmd, "memo")
		h.Due = changedString(editCmd, "due")
		h.At = changedString(editCmd, "at")
		h.Folder = changedString(editCmd, "folder")
		h.ClearDue, _ = editFlags.GetBool("clear-due")
		h.Unfile, _ = editFlags.GetBool("unfile")
		return h
	})

	// Show command
	showCmd := storeCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(app *App) Handler { return NewShowCommand(app) }),
	})

	// Toggle command
	toggleCmd := storeCommand(&cobra.Command{
		Use:     "toggle <id>...",
		Short:   "Complete or reopen tasks",
		Aliases: []string{"done"},
		Args:    cobra.MinimumNArgs(1),
		RunE:    r.run(func(app *App) Handler { return NewToggleCommand(app) }),
	})

	// Delete command
	var deleteYes bool
	deleteCmd := storeCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete a task. This operation cannot be undone; you are asked to
confirm unless --yes is given.`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: r.run(func(app *App) Handler {
			h := NewDeleteCommand(app)
			h.Yes = deleteYes
			return h
		}),
	})
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	// Counts and dashboard
	countsCmd := storeCommand(&cobra.Command{
		Use:   "counts",
		Short: "Show task counts per category and folder",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Handler { return NewCountsCommand(app) }),
	})
	dashboardCmd := storeCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show today's schedule and overdue tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Handler { return NewDashboardCommand(app) }),
	})

	// Export and import
	var exportKey, exportFormat string
	var exportList bool
	exportCmd := storeCommand(&cobra.Command{
		Use:   "export",
		Short: "Export stored data",
		Long: `Export stored data.

Supported formats:
  json - the stored document, unchanged
  csv  - comma-separated values

Examples:
  todo export > todos.json
  todo export --key folders --format csv
  todo export --list`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Handler {
			h := NewExportCommand(app)
			h.Key = exportKey
			h.Format = exportFormat
			h.List = exportList
			return h
		}),
	})
	exportCmd.Flags().BoolVar(&exportList, "list", false, "List the stored documents instead of exporting one")
	exportCmd.Flags().StringVar(&exportKey, "key", "todos", "Document to export (todos or folders)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json or csv)")

	var importKey string
	importCmd := storeCommand(&cobra.Command{
		Use:   "import <file|->",
		Short: "Replace stored data with a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(app *App) Handler {
			h := NewImportCommand(app)
			h.Key = importKey
			return h
		}),
	})
	importCmd.Flags().StringVar(&importKey, "key", "todos", "Document to replace (todos or folders)")

	var resetYes bool
	resetCmd := storeCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove stored tasks and folders",
		Long: `Remove the stored task and folder documents. The next command starts
from the sample data again, or from nothing with --seed=false.`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Handler {
			h := NewResetCommand(app)
			h.Yes = resetYes
			return h
		}),
	})
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	// Interactive mode
	tuiCmd := storeCommand(&cobra.Command{
		Use:   "tui",
		Short: "Browse and edit tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			return ui.Run(ctx, r.app.api, r.app.config)
		},
	})

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		editCmd,
		showCmd,
		toggleCmd,
		deleteCmd,
		r.folderCommand(),
		countsCmd,
		dashboardCmd,
		exportCmd,
		importCmd,
		resetCmd,
		tuiCmd,
	)
}

// folderCommand builds the folder command group.
func (r *RootCommand) folderCommand() *cobra.Command {
	folderCmd := storeCommand(&cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Handler { return NewFolderListCommand(app) }),
	})

	listCmd := storeCommand(&cobra.Command{
		Use:   "list",
		Short: "List folders",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Handler { return NewFolderListCommand(app) }),
	})

	var addColor string
	addCmd := storeCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Handler {
			h := NewFolderAddCommand(app)
			h.Color = addColor
			return h
		}),
	})
	addCmd.Flags().StringVar(&addColor, "color", "", "Color as #RRGGBB (default: next unused palette color)")

	editCmd := storeCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or recolor a folder",
		Args:  cobra.ExactArgs(1),
	})
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().String("color", "", "New color as #RRGGBB")
	editCmd.RunE = r.run(func(app *App) Handler {
		h := NewFolderEditCommand(app)
		h.Name = changedString(editCmd, "name")
		h.Color = changedString(editCmd, "color")
		return h
	})

	var deleteYes bool
	deleteCmd := storeCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a folder and keep its tasks unfiled",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(app *App) Handler {
			h := NewFolderDeleteCommand(app)
			h.Yes = deleteYes
			return h
		}),
	})
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	folderCmd.AddCommand(listCmd, addCmd, editCmd, deleteCmd)
	return folderCmd
}

// changedString returns the flag value only when the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}
