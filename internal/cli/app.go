package cli

import (
	"context"
	"io"
	"os"
	"time"

	"todo-manager/internal/api"
	"todo-manager/internal/config"
	"todo-manager/internal/dates"
	"todo-manager/internal/logging"
)

// DocumentTransfer moves raw stored documents in and out of the store.
type DocumentTransfer interface {
	Export(ctx context.Context, key string) ([]byte, error)
	Import(ctx context.Context, key string, raw []byte) error
	Documents(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) error
}

// App represents the main CLI application
type App struct {
	api    api.API
	docs   DocumentTransfer
	config *config.Config
	logger logging.Logger
	loc    *time.Location
	in     io.Reader
	out    io.Writer
}

// AppOption configures an App.
type AppOption func(*App)

// WithDocuments enables export and import.
func WithDocuments(docs DocumentTransfer) AppOption {
	return func(a *App) { a.docs = docs }
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) AppOption {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// WithAppLogger sets the logger used for failures worth reporting.
func WithAppLogger(logger logging.Logger) AppOption {
	return func(a *App) { a.logger = logger }
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	loc, err := cfg.GetLocation()
	if err != nil {
		loc = time.Local
	}

	app := &App{
		api:    apiInstance,
		config: cfg,
		logger: logging.Nop(),
		loc:    loc,
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// renderer returns a renderer bound to the application output.
func (a *App) renderer() *Renderer {
	return NewRenderer(a.out, a.config, a.loc)
}

// parseDue reads a due date and optional HH:MM in the configured zone.
func (a *App) parseDue(date, clockTime string) (*time.Time, error) {
	return dates.ParseDue(date, clockTime, a.loc)
}
