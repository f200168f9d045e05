// Package explorer answers the questions the web UI asks: which genres exist,
// which songs in a genre fit a mood, and what the charts look like.
package explorer

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/justestif/spotify-mood-explorer/internal/charts"
	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

// Renderer turns a figure into encoded image bytes.
type Renderer interface {
	Bytes(fig charts.Figure) ([]byte, error)
	ContentType() string
}

// Service combines the song repository, the labeling rules and the charts.
// It holds no per-request state.
type Service struct {
	songs    db.SongRepository
	renderer Renderer
	log      *zap.Logger
}

// New creates a new explorer service.
func New(songs db.SongRepository, renderer Renderer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		songs:    songs,
		renderer: renderer,
		log:      log,
	}
}

// ContentType is the MIME type of chart images.
func (s *Service) ContentType() string {
	return s.renderer.ContentType()
}

// Genres returns every genre, sorted for display.
func (s *Service) Genres(ctx context.Context) ([]string, error) {
	genres, err := s.songs.DistinctGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	slices.Sort(genres)
	return genres, nil
}

// SongsByMood labels every song in genre and keeps those with mood m.
func (s *Service) SongsByMood(ctx context.Context, genre string, m mood.Mood) ([]mood.LabeledSong, error) {
	songs, err := s.songs.SongsInGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("loading songs for genre %q: %w", genre, err)
	}

	matched := mood.FilterByMood(mood.Label(songs), m)
	s.log.Debug("filtered songs by mood",
		zap.String("genre", genre),
		zap.String("mood", string(m)),
		zap.Int("total", len(songs)),
		zap.Int("matched", len(matched)),
	)
	return matched, nil
}

// GenrePopularityFigure builds the top genres bar chart from all songs.
func (s *Service) GenrePopularityFigure(ctx context.Context) (charts.Figure, error) {
	songs, err := s.songs.AllSongs(ctx)
	if err != nil {
		return charts.Figure{}, fmt.Errorf("loading songs: %w", err)
	}
	return charts.GenrePopularityChart(songs), nil
}

// DanceabilityFigure builds the actual vs predicted danceability chart for
// one genre.
func (s *Service) DanceabilityFigure(ctx context.Context, genre string) (charts.Figure, error) {
	songs, err := s.songs.SongsInGenre(ctx, genre)
	if err != nil {
		return charts.Figure{}, fmt.Errorf("loading songs for genre %q: %w", genre, err)
	}

	fig, err := charts.DanceabilityChart(genre, songs)
	if err != nil {
		return charts.Figure{}, fmt.Errorf("building danceability chart: %w", err)
	}

	if fig.DegenerateFit {
		s.log.Warn("degenerate danceability fit",
			zap.String("genre", genre),
			zap.Int("rows", len(songs)),
		)
	}
	return fig, nil
}

// GenrePopularityImage renders the top genres chart.
func (s *Service) GenrePopularityImage(ctx context.Context) ([]byte, error) {
	fig, err := s.GenrePopularityFigure(ctx)
	if err != nil {
		return nil, err
	}
	return s.render(fig)
}

// DanceabilityImage renders the danceability chart for genre.
func (s *Service) DanceabilityImage(ctx context.Context, genre string) ([]byte, error) {
	fig, err := s.DanceabilityFigure(ctx, genre)
	if err != nil {
		return nil, err
	}
	return s.render(fig)
}

func (s *Service) render(fig charts.Figure) ([]byte, error) {
	data, err := s.renderer.Bytes(fig)
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return data, nil
}
