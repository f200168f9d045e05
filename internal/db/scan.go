package db

import (
	"database/sql"
	"fmt"

	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

// NullableSong receives one SongColumns row. Backends scan into it so that
// NULLs are rejected in one place.
type NullableSong struct {
	TrackName    sql.NullString
	Artists      sql.NullString
	TrackGenre   sql.NullString
	Popularity   sql.NullFloat64
	Danceability sql.NullFloat64
	Energy       sql.NullFloat64
	Valence      sql.NullFloat64
	Tempo        sql.NullFloat64
	Acousticness sql.NullFloat64
	Liveness     sql.NullFloat64
}

// Dest returns scan destinations in SongColumns order.
func (n *NullableSong) Dest() []any {
	return []any{
		&n.TrackName,
		&n.Artists,
		&n.TrackGenre,
		&n.Popularity,
		&n.Danceability,
		&n.Energy,
		&n.Valence,
		&n.Tempo,
		&n.Acousticness,
		&n.Liveness,
	}
}

// Song converts the scanned row, failing with ErrMissingValue on any NULL.
func (n *NullableSong) Song() (mood.Song, error) {
	strs := []struct {
		name string
		v    sql.NullString
	}{
		{"track_name", n.TrackName},
		{"artists", n.Artists},
		{"track_genre", n.TrackGenre},
	}
	for _, s := range strs {
		if !s.v.Valid {
			return mood.Song{}, fmt.Errorf("%w in column %s", ErrMissingValue, s.name)
		}
	}

	nums := []struct {
		name string
		v    sql.NullFloat64
	}{
		{"popularity", n.Popularity},
		{"danceability", n.Danceability},
		{"energy", n.Energy},
		{"valence", n.Valence},
		{"tempo", n.Tempo},
		{"acousticness", n.Acousticness},
		{"liveness", n.Liveness},
	}
	for _, f := range nums {
		if !f.v.Valid {
			return mood.Song{}, fmt.Errorf("%w in column %s (track %q)", ErrMissingValue, f.name, n.TrackName.String)
		}
	}

	return mood.Song{
		TrackName:    n.TrackName.String,
		Artists:      n.Artists.String,
		TrackGenre:   n.TrackGenre.String,
		Popularity:   n.Popularity.Float64,
		Danceability: n.Danceability.Float64,
		Energy:       n.Energy.Float64,
		Valence:      n.Valence.Float64,
		Tempo:        n.Tempo.Float64,
		Acousticness: n.Acousticness.Float64,
		Liveness:     n.Liveness.Float64,
	}, nil
}
