package config

import (
	"context"
	"fmt"
	"os"

	"todo-manager/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(ctx context.Context, config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, config.GetQueryTimeout())
	defer cancel()

	repo, err := sqlite.New(ctx, config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}
