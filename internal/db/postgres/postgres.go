// Package postgres provides a PostgreSQL-backed song store.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

const schema = `
	CREATE TABLE IF NOT EXISTS songs (
		track_id TEXT,
		artists TEXT,
		album_name TEXT,
		track_name TEXT,
		popularity DOUBLE PRECISION,
		duration_ms INTEGER,
		explicit BOOLEAN,
		danceability DOUBLE PRECISION,
		energy DOUBLE PRECISION,
		key INTEGER,
		loudness DOUBLE PRECISION,
		mode INTEGER,
		speechiness DOUBLE PRECISION,
		acousticness DOUBLE PRECISION,
		instrumentalness DOUBLE PRECISION,
		liveness DOUBLE PRECISION,
		valence DOUBLE PRECISION,
		tempo DOUBLE PRECISION,
		time_signature INTEGER,
		track_genre TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_songs_track_genre ON songs (track_genre);
`

// Store implements db.Store on a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, db.Wrap("open", fmt.Errorf("parsing database URL: %w", err))
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, db.Wrap("open", fmt.Errorf("creating connection pool: %w", err))
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, db.Wrap("open", fmt.Errorf("pinging database: %w", err))
	}

	return &Store{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Migrate creates the songs table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return db.Wrap("migrate", fmt.Errorf("creating songs table: %w", err))
	}
	return nil
}

// AllSongs returns every song.
func (s *Store) AllSongs(ctx context.Context) ([]mood.Song, error) {
	query := `SELECT ` + db.SongColumns + ` FROM songs`
	songs, err := s.querySongs(ctx, query)
	return songs, db.Wrap("all songs", err)
}

// SongsInGenre returns songs whose track_genre equals genre.
func (s *Store) SongsInGenre(ctx context.Context, genre string) ([]mood.Song, error) {
	if genre == "" {
		return nil, nil
	}
	query := `SELECT ` + db.SongColumns + ` FROM songs WHERE track_genre = $1`
	songs, err := s.querySongs(ctx, query, genre)
	return songs, db.Wrap("songs in genre", err)
}

// DistinctGenres returns each genre once. A NULL genre is an error, as it is
// for the song queries.
func (s *Store) DistinctGenres(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT track_genre FROM songs`)
	if err != nil {
		return nil, db.Wrap("distinct genres", fmt.Errorf("querying genres: %w", err))
	}

	genres, err := pgx.CollectRows(rows, pgx.RowTo[*string])
	if err != nil {
		return nil, db.Wrap("distinct genres", fmt.Errorf("collecting genres: %w", err))
	}

	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g == nil {
			return nil, db.Wrap("distinct genres", fmt.Errorf("%w in column track_genre", db.ErrMissingValue))
		}
		out = append(out, *g)
	}
	return out, nil
}

// ReplaceAll deletes every song and bulk-loads records with COPY in one
// transaction.
func (s *Store) ReplaceAll(ctx context.Context, records []db.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return db.Wrap("replace", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM songs`); err != nil {
		return db.Wrap("replace", fmt.Errorf("clearing songs: %w", err))
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = r.Values()
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"songs"}, db.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return db.Wrap("replace", fmt.Errorf("copying songs: %w", err))
	}
	if int(n) != len(records) {
		return db.Wrap("replace", fmt.Errorf("copied %d of %d songs", n, len(records)))
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Wrap("replace", fmt.Errorf("committing: %w", err))
	}
	return nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]mood.Song, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var songs []mood.Song
	for rows.Next() {
		var n db.NullableSong
		if err := rows.Scan(n.Dest()...); err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		song, err := n.Song()
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

var _ db.Store = (*Store)(nil)
