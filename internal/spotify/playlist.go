package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

const (
	maxTracksPerRequest = 100
	maxItemsPerPage     = 100
)

// FetchPlaylistTracks retrieves every track on a playlist, following pages.
// Episodes and local files are skipped.
func (c *Client) FetchPlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	var tracks []Track

	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(maxItemsPerPage))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}

	skipped := 0
	for {
		for _, item := range page.Items {
			if item.IsLocal || item.Track.Track == nil || item.Track.Track.ID == "" {
				skipped++
				continue
			}
			tracks = append(tracks, convertTrack(item.Track.Track))
		}

		c.log.Debug("fetched playlist page",
			zap.String("playlist", playlistID),
			zap.Int("tracks", len(tracks)),
		)

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	c.log.Info("fetched playlist",
		zap.String("playlist", playlistID),
		zap.Int("tracks", len(tracks)),
		zap.Int("skipped", skipped),
	)
	return tracks, nil
}
