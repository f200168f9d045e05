package main

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/justestif/spotify-mood-explorer/internal/config"
)

func TestOpenStoreSQLite(t *testing.T) {
	ctx := context.Background()

	store, err := openStore(ctx, config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer store.Close()

	genres, err := store.DistinctGenres(ctx)
	if err != nil {
		t.Fatalf("DistinctGenres() error = %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("DistinctGenres() = %v, want empty", genres)
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.StorageConfig{Driver: "mysql"}, zap.NewNop())
	if !errors.Is(err, config.ErrUnknownDriver) {
		t.Errorf("openStore() error = %v, want %v", err, config.ErrUnknownDriver)
	}
}
