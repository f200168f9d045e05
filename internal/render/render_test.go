package render

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/justestif/spotify-mood-explorer/internal/charts"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

func TestRenderFigures(t *testing.T) {
	songs := []mood.Song{
		{TrackGenre: "pop", Popularity: 80, Energy: 0.8, Acousticness: 0.1, Liveness: 0.2, Danceability: 0.7},
		{TrackGenre: "pop", Popularity: 60, Energy: 0.5, Acousticness: 0.3, Liveness: 0.1, Danceability: 0.6},
		{TrackGenre: "pop", Popularity: 70, Energy: 0.2, Acousticness: 0.7, Liveness: 0.4, Danceability: 0.3},
		{TrackGenre: "pop", Popularity: 50, Energy: 0.9, Acousticness: 0.05, Liveness: 0.6, Danceability: 0.8},
		{TrackGenre: "jazz", Popularity: 40, Energy: 0.3, Acousticness: 0.8, Liveness: 0.3, Danceability: 0.5},
	}

	dance, err := charts.DanceabilityChart("pop", songs[:4])
	if err != nil {
		t.Fatalf("DanceabilityChart() error = %v", err)
	}
	emptyDance, err := charts.DanceabilityChart("none", nil)
	if err != nil {
		t.Fatalf("DanceabilityChart() error = %v", err)
	}

	tests := []struct {
		name string
		fig  charts.Figure
	}{
		{"genre popularity", charts.GenrePopularityChart(songs)},
		{"empty genre popularity", charts.GenrePopularityChart(nil)},
		{"danceability", dance},
		{"empty danceability", emptyDance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := PNG{}.Bytes(tt.fig)
			if err != nil {
				t.Fatalf("Bytes() error = %v", err)
			}

			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("output is not a PNG: %v", err)
			}

			bounds := img.Bounds()
			wantW := int(tt.fig.Width * defaultDPI)
			if d := bounds.Dx() - wantW; d < -1 || d > 1 {
				t.Errorf("width = %d px, want %d", bounds.Dx(), wantW)
			}
		})
	}
}

func TestRenderNoPanels(t *testing.T) {
	var buf bytes.Buffer
	if err := (PNG{}).Render(charts.Figure{Width: 1, Height: 1}, &buf); !errors.Is(err, ErrNoPanels) {
		t.Errorf("Render() error = %v, want ErrNoPanels", err)
	}
}
