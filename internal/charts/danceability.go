package charts

import (
	"fmt"
	"image/color"

	"github.com/justestif/spotify-mood-explorer/internal/mood"
	"github.com/justestif/spotify-mood-explorer/internal/regression"
)

const energyLegendTitle = "Energy Level"

// energyColors fixes the color of each energy category. Legend order follows
// mood.Categories.
var energyColors = map[mood.Category]color.NRGBA{
	mood.Low:    Red,
	mood.Medium: Orange,
	mood.High:   Green,
}

// Prediction pairs a song with the danceability a fitted model predicts for it.
type Prediction struct {
	Song        mood.Song
	Predicted   float64
	EnergyLevel mood.Category
}

// PredictDanceability fits danceability against energy, acousticness and
// liveness over songs and returns in-sample predictions in input order.
// Empty input returns no predictions and a nil model.
func PredictDanceability(songs []mood.Song) ([]Prediction, *regression.Model, error) {
	if len(songs) == 0 {
		return nil, nil, nil
	}

	x := make([][]float64, len(songs))
	y := make([]float64, len(songs))
	for i, s := range songs {
		x[i] = []float64{s.Energy, s.Acousticness, s.Liveness}
		y[i] = s.Danceability
	}

	model, err := regression.Fit(x, y)
	if err != nil {
		return nil, nil, fmt.Errorf("fitting danceability model: %w", err)
	}

	predicted := model.PredictAll(x)
	predictions := make([]Prediction, len(songs))
	for i, s := range songs {
		predictions[i] = Prediction{
			Song:        s,
			Predicted:   predicted[i],
			EnergyLevel: mood.Categorize(s.Energy),
		}
	}
	return predictions, model, nil
}

// DanceabilityChart builds two stacked scatter panels for one genre: actual
// danceability against energy on top and predicted danceability against
// energy below, colored by energy category.
//
// songs must already be filtered to genre. Categories with no songs are
// left out of both panels.
func DanceabilityChart(genre string, songs []mood.Song) (Figure, error) {
	predictions, model, err := PredictDanceability(songs)
	if err != nil {
		return Figure{}, err
	}

	actual := Panel{
		Title:       fmt.Sprintf("Actual Danceability vs Energy (%s)", genre),
		XLabel:      "Energy",
		YLabel:      "Danceability",
		LegendTitle: energyLegendTitle,
		Grid:        true,
	}
	predicted := Panel{
		Title:       fmt.Sprintf("Predicted Danceability vs Energy (%s)", genre),
		XLabel:      "Energy",
		YLabel:      "Predicted Danceability",
		LegendTitle: energyLegendTitle,
		Grid:        true,
	}

	for _, category := range mood.Categories() {
		var actualPts, predictedPts []Point
		for _, p := range predictions {
			if p.EnergyLevel != category {
				continue
			}
			actualPts = append(actualPts, Point{X: p.Song.Energy, Y: p.Song.Danceability})
			predictedPts = append(predictedPts, Point{X: p.Song.Energy, Y: p.Predicted})
		}
		if len(actualPts) == 0 {
			continue
		}

		c := withAlpha(energyColors[category], 0.7)
		actual.Series = append(actual.Series, Series{Name: string(category), Color: c, Points: actualPts})
		predicted.Series = append(predicted.Series, Series{Name: string(category), Color: c, Points: predictedPts})
	}

	return Figure{
		Width:         10,
		Height:        6,
		Panels:        []Panel{actual, predicted},
		DegenerateFit: model != nil && model.Degenerate,
	}, nil
}
