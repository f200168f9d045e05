package db

import "github.com/justestif/spotify-mood-explorer/internal/mood"

// Record is a full row of the songs table. The embedded Song holds the
// columns the application reads; the rest are kept for completeness of the
// imported dataset.
type Record struct {
	mood.Song
	TrackID          string
	AlbumName        string
	DurationMs       int
	Explicit         bool
	Key              int
	Loudness         float64
	Mode             int
	Speechiness      float64
	Instrumentalness float64
	TimeSignature    int
}

// Columns lists the songs table columns in insert order.
var Columns = []string{
	"track_id",
	"artists",
	"album_name",
	"track_name",
	"popularity",
	"duration_ms",
	"explicit",
	"danceability",
	"energy",
	"key",
	"loudness",
	"mode",
	"speechiness",
	"acousticness",
	"instrumentalness",
	"liveness",
	"valence",
	"tempo",
	"time_signature",
	"track_genre",
}

// SongColumns are the columns scanned into a mood.Song, in scan order.
const SongColumns = `track_name, artists, track_genre, popularity, danceability,
	energy, valence, tempo, acousticness, liveness`

// Values returns the record's column values in Columns order.
func (r Record) Values() []any {
	return []any{
		r.TrackID,
		r.Artists,
		r.AlbumName,
		r.TrackName,
		r.Popularity,
		r.DurationMs,
		r.Explicit,
		r.Danceability,
		r.Energy,
		r.Key,
		r.Loudness,
		r.Mode,
		r.Speechiness,
		r.Acousticness,
		r.Instrumentalness,
		r.Liveness,
		r.Valence,
		r.Tempo,
		r.TimeSignature,
		r.TrackGenre,
	}
}
