package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mirelle/gloss/internal/config"
	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/service"
	"github.com/mirelle/gloss/internal/storage"
)

// pricelistLoader is the subset of storage the read-only commands need.
type pricelistLoader interface {
	GetPricelist(ctx context.Context, id int64) (*model.Pricelist, error)
	GetLatestPricelist(ctx context.Context) (*model.Pricelist, error)
}

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/gloss/gloss.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
