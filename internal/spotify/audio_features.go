package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// FetchAudioFeatures retrieves audio features for the given track IDs, keyed
// by ID. Batches requests to max 100 tracks per request per Spotify API
// limits. Tracks without available audio features are absent from the map.
func (c *Client) FetchAudioFeatures(ctx context.Context, ids []string) (map[string]AudioFeatures, error) {
	result := make(map[string]AudioFeatures, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	total := len(ids)

	// Fetch in batches of 100
	for i := 0; i < total; i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, total)

		batch := make([]spotify.ID, 0, end-i)
		for _, id := range ids[i:end] {
			batch = append(batch, spotify.ID(id))
		}

		c.log.Debug("fetching audio features",
			zap.Int("from", i+1),
			zap.Int("to", end),
			zap.Int("total", total),
		)

		features, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			return nil, fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue // Track has no audio features
			}
			result[f.ID.String()] = convertAudioFeatures(f)
		}
	}

	c.log.Info("fetched audio features",
		zap.Int("requested", total),
		zap.Int("found", len(result)),
	)
	return result, nil
}

// convertAudioFeatures copies audio feature values into an AudioFeatures.
func convertAudioFeatures(f *spotify.AudioFeatures) AudioFeatures {
	return AudioFeatures{
		Acousticness:     float64(f.Acousticness),
		Danceability:     float64(f.Danceability),
		Energy:           float64(f.Energy),
		Instrumentalness: float64(f.Instrumentalness),
		Key:              int(f.Key),
		Liveness:         float64(f.Liveness),
		Loudness:         float64(f.Loudness),
		Mode:             int(f.Mode),
		Speechiness:      float64(f.Speechiness),
		Tempo:            float64(f.Tempo),
		TimeSignature:    int(f.TimeSignature),
		Valence:          float64(f.Valence),
	}
}
