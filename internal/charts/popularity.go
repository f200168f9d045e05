package charts

import (
	"slices"

	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

const (
	topGenreCount   = 10
	popularityTitle = "Average Popularity vs Top 10 Genres"
)

// GenrePopularity is the mean popularity of one genre.
type GenrePopularity struct {
	Genre   string
	Average float64
	Count   int
}

// RankGenresByPopularity groups songs by genre and orders the genres by mean
// popularity, highest first. Genres with equal means keep the order in which
// they first appear in songs.
func RankGenresByPopularity(songs []mood.Song) []GenrePopularity {
	index := make(map[string]int)
	var ranked []GenrePopularity
	sums := []float64{}

	for _, s := range songs {
		i, ok := index[s.TrackGenre]
		if !ok {
			i = len(ranked)
			index[s.TrackGenre] = i
			ranked = append(ranked, GenrePopularity{Genre: s.TrackGenre})
			sums = append(sums, 0)
		}
		sums[i] += s.Popularity
		ranked[i].Count++
	}

	for i := range ranked {
		ranked[i].Average = sums[i] / float64(ranked[i].Count)
	}

	slices.SortStableFunc(ranked, func(a, b GenrePopularity) int {
		switch {
		case a.Average > b.Average:
			return -1
		case a.Average < b.Average:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// GenrePopularityChart builds a bar chart of the ten genres with the highest
// mean popularity. Empty input yields a panel with no bars.
func GenrePopularityChart(songs []mood.Song) Figure {
	ranked := RankGenresByPopularity(songs)
	if len(ranked) > topGenreCount {
		ranked = ranked[:topGenreCount]
	}

	bars := make([]Bar, len(ranked))
	for i, g := range ranked {
		bars[i] = Bar{Label: g.Genre, Value: g.Average}
	}

	return Figure{
		Width:  6.4,
		Height: 4.8,
		Panels: []Panel{{
			Title:         popularityTitle,
			XLabel:        "Genre",
			YLabel:        "Popularity",
			Bars:          bars,
			BarColor:      SkyBlue,
			XTickRotation: 45,
		}},
	}
}
