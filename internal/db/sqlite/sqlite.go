// Package sqlite provides a SQLite-backed song store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

const schema = `
	CREATE TABLE IF NOT EXISTS songs (
		track_id TEXT,
		artists TEXT,
		album_name TEXT,
		track_name TEXT,
		popularity INTEGER,
		duration_ms INTEGER,
		explicit INTEGER,
		danceability REAL,
		energy REAL,
		key INTEGER,
		loudness REAL,
		mode INTEGER,
		speechiness REAL,
		acousticness REAL,
		instrumentalness REAL,
		liveness REAL,
		valence REAL,
		tempo REAL,
		time_signature INTEGER,
		track_genre TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_songs_track_genre ON songs (track_genre);
`

// Store implements db.Store on a SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens the database at path. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, db.Wrap("open", fmt.Errorf("opening sqlite db: %w", err))
	}

	// an in-memory database lives only as long as its one connection
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, db.Wrap("open", fmt.Errorf("pinging sqlite db: %w", err))
	}

	return &Store{db: conn}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the songs table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return db.Wrap("migrate", fmt.Errorf("creating songs table: %w", err))
	}
	return nil
}

// AllSongs returns every song in rowid order.
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
	query := `SELECT ` + db.SongColumns + ` FROM songs WHERE track_genre = ?`
	songs, err := s.querySongs(ctx, query, genre)
	return songs, db.Wrap("songs in genre", err)
}

// DistinctGenres returns each genre once. A NULL genre is an error, as it is
// for the song queries.
func (s *Store) DistinctGenres(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT track_genre FROM songs`)
	if err != nil {
		return nil, db.Wrap("distinct genres", fmt.Errorf("querying genres: %w", err))
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g sql.NullString
		if err := rows.Scan(&g); err != nil {
			return nil, db.Wrap("distinct genres", fmt.Errorf("scanning genre: %w", err))
		}
		if !g.Valid {
			return nil, db.Wrap("distinct genres", fmt.Errorf("%w in column track_genre", db.ErrMissingValue))
		}
		genres = append(genres, g.String)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("distinct genres", fmt.Errorf("iterating genres: %w", err))
	}
	return genres, nil
}

// ReplaceAll deletes every song and inserts records in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, records []db.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return db.Wrap("replace", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM songs`); err != nil {
		return db.Wrap("replace", fmt.Errorf("clearing songs: %w", err))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(db.Columns)), ", ")
	insert := fmt.Sprintf(`INSERT INTO songs (%s) VALUES (%s)`, strings.Join(db.Columns, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return db.Wrap("replace", fmt.Errorf("preparing insert: %w", err))
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Values()...); err != nil {
			return db.Wrap("replace", fmt.Errorf("inserting row %d: %w", i, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return db.Wrap("replace", fmt.Errorf("committing: %w", err))
	}
	return nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]mood.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating songs: %w", err)
	}
	return songs, nil
}

var _ db.Store = (*Store)(nil)
