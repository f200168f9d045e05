package spotify

import (
	"strings"

	"github.com/zmb3/spotify/v2"
)

// convertTrack converts a Spotify FullTrack to a Track.
func convertTrack(t *spotify.FullTrack) Track {
	// Join artist names
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	return Track{
		ID:         t.ID.String(),
		Name:       t.Name,
		Artists:    strings.Join(artists, ", "),
		Album:      t.Album.Name,
		Popularity: int(t.Popularity),
		DurationMs: int(t.Duration),
		Explicit:   t.Explicit,
	}
}
