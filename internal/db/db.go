// Package db defines storage access for the songs table.
//
// The contract lives here; the sqlite and postgres subpackages implement it.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

// Common errors.
var (
	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("storage error")
	// ErrMissingValue is wrapped when a row has NULL in a required column.
	ErrMissingValue = errors.New("missing value")
)

// StorageError reports a failed storage operation. Callers get either a
// complete result or a StorageError, never partial rows.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Wrap returns err as a *StorageError for op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// SongRepository is read-only access to the songs table.
type SongRepository interface {
	// AllSongs returns every song in storage order.
	AllSongs(ctx context.Context) ([]mood.Song, error)
	// SongsInGenre returns songs whose genre equals genre exactly.
	// An empty or unknown genre yields an empty result.
	SongsInGenre(ctx context.Context, genre string) ([]mood.Song, error)
	// DistinctGenres returns each genre once, in no particular order.
	DistinctGenres(ctx context.Context) ([]string, error)
}

// SongWriter replaces the contents of the songs table. Only importers use it.
type SongWriter interface {
	ReplaceAll(ctx context.Context, records []Record) error
}

// Store is a complete storage backend.
type Store interface {
	SongRepository
	SongWriter
	Migrate(ctx context.Context) error
	Close() error
}
