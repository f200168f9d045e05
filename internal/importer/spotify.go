package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
	"github.com/justestif/spotify-mood-explorer/internal/spotify"
)

// PlaylistFetcher reads playlist tracks and their audio features.
type PlaylistFetcher interface {
	FetchPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error)
	FetchAudioFeatures(ctx context.Context, ids []string) (map[string]spotify.AudioFeatures, error)
}

// SpotifySource builds songs table rows from a Spotify playlist. Spotify does
// not expose a genre per track, so every row gets the caller's genre label.
type SpotifySource struct {
	client PlaylistFetcher
	log    *zap.Logger
}

// NewSpotifySource creates a new SpotifySource.
func NewSpotifySource(client PlaylistFetcher, log *zap.Logger) *SpotifySource {
	if log == nil {
		log = zap.NewNop()
	}
	return &SpotifySource{client: client, log: log}
}

// Import fetches the playlist and returns one record per track that has audio
// features, labeled with genre.
func (s *SpotifySource) Import(ctx context.Context, playlistID, genre string) ([]db.Record, ImportStats, error) {
	var stats ImportStats
	if genre == "" {
		return nil, stats, ErrMissingGenre
	}

	tracks, err := s.client.FetchPlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, stats, fmt.Errorf("fetching playlist tracks: %w", err)
	}
	stats.Rows = len(tracks)

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}

	features, err := s.client.FetchAudioFeatures(ctx, ids)
	if err != nil {
		return nil, stats, fmt.Errorf("fetching audio features: %w", err)
	}

	records := make([]db.Record, 0, len(tracks))
	for _, t := range tracks {
		f, ok := features[t.ID]
		if !ok {
			stats.Incomplete++
			s.log.Debug("skipping track without audio features",
				zap.String("track_id", t.ID),
				zap.String("track_name", t.Name),
			)
			continue
		}
		records = append(records, toRecord(t, f, genre))
	}

	records, stats.Duplicates = dedupe(records)
	stats.Kept = len(records)

	s.log.Info("imported playlist",
		zap.String("playlist", playlistID),
		zap.String("genre", genre),
		zap.Int("tracks", stats.Rows),
		zap.Int("kept", stats.Kept),
	)
	return records, stats, nil
}

func toRecord(t spotify.Track, f spotify.AudioFeatures, genre string) db.Record {
	return db.Record{
		Song: mood.Song{
			TrackName:    t.Name,
			Artists:      t.Artists,
			TrackGenre:   genre,
			Popularity:   float64(t.Popularity),
			Danceability: f.Danceability,
			Energy:       f.Energy,
			Valence:      f.Valence,
			Tempo:        f.Tempo,
			Acousticness: f.Acousticness,
			Liveness:     f.Liveness,
		},
		TrackID:          t.ID,
		AlbumName:        t.Album,
		DurationMs:       t.DurationMs,
		Explicit:         t.Explicit,
		Key:              f.Key,
		Loudness:         f.Loudness,
		Mode:             f.Mode,
		Speechiness:      f.Speechiness,
		Instrumentalness: f.Instrumentalness,
		TimeSignature:    f.TimeSignature,
	}
}
