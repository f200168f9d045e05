package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/justestif/spotify-mood-explorer/internal/config"
	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/db/postgres"
	"github.com/justestif/spotify-mood-explorer/internal/db/sqlite"
)

// openStore connects to the configured backend and ensures the songs table
// exists.
func openStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		store, err = postgres.New(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Driver, err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrating %s store: %w", cfg.Driver, err)
	}

	log.Debug("opened store", zap.String("driver", cfg.Driver))
	return store, nil
}
