package sqlite

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func testRecords() []db.Record {
	return []db.Record{
		{
			Song: mood.Song{
				TrackName: "Comedy", Artists: "Gen Hoshino", TrackGenre: "acoustic",
				Popularity: 73, Danceability: 0.676, Energy: 0.461, Valence: 0.715,
				Tempo: 87.917, Acousticness: 0.0322, Liveness: 0.358,
			},
			TrackID: "5SuOikwiRyPMVoIQDJUgSV", AlbumName: "Comedy", DurationMs: 230666,
		},
		{
			Song: mood.Song{
				TrackName: "Ghost - Acoustic", Artists: "Ben Woodward", TrackGenre: "acoustic",
				Popularity: 55, Danceability: 0.42, Energy: 0.166, Valence: 0.267,
				Tempo: 77.489, Acousticness: 0.924, Liveness: 0.101,
			},
			TrackID: "4qPNDBW1i3p13qLCt0Ki3A", AlbumName: "Ghost (Acoustic)", DurationMs: 149610,
		},
		{
			Song: mood.Song{
				TrackName: "Blinding Lights", Artists: "The Weeknd", TrackGenre: "Pop",
				Popularity: 90, Danceability: 0.514, Energy: 0.73, Valence: 0.334,
				Tempo: 171.005, Acousticness: 0.00146, Liveness: 0.0897,
			},
			TrackID: "0VjIjW4GlUZAMYd2vXMi3b", AlbumName: "After Hours", DurationMs: 200040, Explicit: false,
		},
	}
}

func TestStore_Queries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.ReplaceAll(ctx, testRecords()); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	tests := []struct {
		name       string
		query      func() ([]mood.Song, error)
		wantTracks []string
	}{
		{
			name:       "all songs in storage order",
			query:      func() ([]mood.Song, error) { return s.AllSongs(ctx) },
			wantTracks: []string{"Comedy", "Ghost - Acoustic", "Blinding Lights"},
		},
		{
			name:       "songs in genre",
			query:      func() ([]mood.Song, error) { return s.SongsInGenre(ctx, "acoustic") },
			wantTracks: []string{"Comedy", "Ghost - Acoustic"},
		},
		{
			name:  "genre match is case sensitive",
			query: func() ([]mood.Song, error) { return s.SongsInGenre(ctx, "pop") },
		},
		{
			name:  "unknown genre is empty",
			query: func() ([]mood.Song, error) { return s.SongsInGenre(ctx, "nonexistent") },
		},
		{
			name:  "empty genre is empty",
			query: func() ([]mood.Song, error) { return s.SongsInGenre(ctx, "") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			songs, err := tt.query()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, s := range songs {
				got = append(got, s.TrackName)
			}
			if !slices.Equal(got, tt.wantTracks) {
				t.Errorf("tracks = %v, want %v", got, tt.wantTracks)
			}
		})
	}
}

func TestStore_SongFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	records := testRecords()
	if err := s.ReplaceAll(ctx, records); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	songs, err := s.SongsInGenre(ctx, "Pop")
	if err != nil {
		t.Fatalf("songs in genre: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	if songs[0] != records[2].Song {
		t.Errorf("song = %+v, want %+v", songs[0], records[2].Song)
	}
}

func TestStore_DistinctGenres(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	genres, err := s.DistinctGenres(ctx)
	if err != nil {
		t.Fatalf("distinct genres on empty store: %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("got %v, want no genres", genres)
	}

	if err := s.ReplaceAll(ctx, testRecords()); err != nil {
		t.Fatalf("replace all: %v", err)
	}

	genres, err = s.DistinctGenres(ctx)
	if err != nil {
		t.Fatalf("distinct genres: %v", err)
	}
	slices.Sort(genres)
	if want := []string{"Pop", "acoustic"}; !slices.Equal(genres, want) {
		t.Errorf("genres = %v, want %v", genres, want)
	}
}

func TestStore_ReplaceAllReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.ReplaceAll(ctx, testRecords()); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := s.ReplaceAll(ctx, testRecords()[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	songs, err := s.AllSongs(ctx)
	if err != nil {
		t.Fatalf("all songs: %v", err)
	}
	if len(songs) != 1 {
		t.Errorf("got %d songs, want 1", len(songs))
	}
}

func TestStore_NullColumnIsStorageError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.db.ExecContext(ctx, `INSERT INTO songs (track_name, artists, track_genre, popularity) VALUES ('x', 'y', 'rock', 10)`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = s.SongsInGenre(ctx, "rock")
	if !errors.Is(err, db.ErrStorage) {
		t.Fatalf("error = %v, want ErrStorage", err)
	}
	if !errors.Is(err, db.ErrMissingValue) {
		t.Errorf("error = %v, want ErrMissingValue", err)
	}

	var se *db.StorageError
	if !errors.As(err, &se) || se.Op != "songs in genre" {
		t.Errorf("error = %#v, want StorageError with op", err)
	}
}

func TestStore_NullGenreIsStorageError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.ReplaceAll(ctx, testRecords()); err != nil {
		t.Fatalf("replace all: %v", err)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO songs (track_name, artists, popularity, danceability, energy, valence, tempo, acousticness, liveness)
		VALUES ('x', 'y', 10, 0.5, 0.5, 0.5, 100, 0.5, 0.5)`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = s.DistinctGenres(ctx)
	if !errors.Is(err, db.ErrMissingValue) {
		t.Fatalf("DistinctGenres() error = %v, want ErrMissingValue", err)
	}
	var se *db.StorageError
	if !errors.As(err, &se) || se.Op != "distinct genres" {
		t.Errorf("error = %#v, want StorageError with op", err)
	}

	// The song queries reject the same row.
	if _, err := s.AllSongs(ctx); !errors.Is(err, db.ErrMissingValue) {
		t.Errorf("AllSongs() error = %v, want ErrMissingValue", err)
	}
}

func TestStore_MissingTableIsStorageError(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, err := s.AllSongs(context.Background()); !errors.Is(err, db.ErrStorage) {
		t.Errorf("error = %v, want ErrStorage", err)
	}
	if _, err := s.DistinctGenres(context.Background()); !errors.Is(err, db.ErrStorage) {
		t.Errorf("error = %v, want ErrStorage", err)
	}
}
