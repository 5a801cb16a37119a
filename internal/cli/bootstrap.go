package cli

import (
	"context"
	"fmt"

	"todo-manager/internal/api"
	"todo-manager/internal/clock"
	"todo-manager/internal/config"
	"todo-manager/internal/logging"
	"todo-manager/internal/storage"
)

// Session is the loaded store a command runs against.
type Session struct {
	API   api.API
	Docs  DocumentTransfer
	Close func() error
}

// Bootstrap opens and loads the store described by cfg.
type Bootstrap func(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Session, error)

// NewBootstrap returns a Bootstrap reading the time from clk. A nil clk uses
// the system clock in the configured time zone.
func NewBootstrap(clk clock.Clock) Bootstrap {
	return func(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Session, error) {
		loc, err := cfg.GetLocation()
		if err != nil {
			return nil, err
		}
		if clk == nil {
			clk = clock.NewSystem(loc)
		}

		repo, err := config.CreateRepository(ctx, cfg)
		if err != nil {
			return nil, err
		}

		docs, err := storage.NewDocumentStore(repo,
			storage.WithLogger(logger),
			storage.WithTimeouts(cfg.GetQueryTimeout(), cfg.GetWriteTimeout()),
			storage.WithLocation(loc),
			storage.WithLimits(cfg),
		)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to initialize document store: %w", err)
		}

		store := api.New(docs, clk, api.WithLogger(logger), api.WithConfig(cfg))
		if err := store.Load(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to load tasks: %w", err)
		}

		if version, err := repo.SchemaVersion(ctx); err == nil {
			logger.Debugf(ctx, "opened %s (schema version %d)", cfg.GetDatabasePath(), version)
		}
		return &Session{API: store, Docs: docs, Close: repo.Close}, nil
	}
}
