// Package export writes rendered charts to a directory or an object store.
package export

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Sink stores one encoded chart under name.
type Sink interface {
	Put(ctx context.Context, name string, png []byte) error
}

// ChartSource renders the charts to export.
type ChartSource interface {
	Genres(ctx context.Context) ([]string, error)
	GenrePopularityImage(ctx context.Context) ([]byte, error)
	DanceabilityImage(ctx context.Context, genre string) ([]byte, error)
}

const (
	genrePopularityName = "genre-popularity.png"
	danceabilityPrefix  = "danceability-prediction/"
)

// Export renders the genre popularity chart and one danceability chart per
// genre into sink. When genres is empty every stored genre is exported.
// It returns the number of charts written.
func Export(ctx context.Context, src ChartSource, sink Sink, genres []string, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if len(genres) == 0 {
		all, err := src.Genres(ctx)
		if err != nil {
			return 0, fmt.Errorf("listing genres: %w", err)
		}
		genres = all
	}

	img, err := src.GenrePopularityImage(ctx)
	if err != nil {
		return 0, fmt.Errorf("rendering genre popularity: %w", err)
	}
	if err := sink.Put(ctx, genrePopularityName, img); err != nil {
		return 0, fmt.Errorf("writing %s: %w", genrePopularityName, err)
	}
	written := 1

	for _, genre := range genres {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		img, err := src.DanceabilityImage(ctx, genre)
		if err != nil {
			return written, fmt.Errorf("rendering danceability for %q: %w", genre, err)
		}

		name := DanceabilityName(genre)
		if err := sink.Put(ctx, name, img); err != nil {
			return written, fmt.Errorf("writing %s: %w", name, err)
		}
		written++

		log.Debug("exported chart", zap.String("name", name))
	}

	log.Info("exported charts", zap.Int("count", written))
	return written, nil
}

// DanceabilityName is the object name of a genre's danceability chart.
func DanceabilityName(genre string) string {
	return danceabilityPrefix + slug(genre) + ".png"
}

// slug keeps letters, digits, '-' and '_' and replaces everything else
// with '_'.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
}
