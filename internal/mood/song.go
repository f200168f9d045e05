// Package mood derives categorical labels from song audio features.
package mood

// Song is a single row of the songs table as seen by the classification and
// chart code. Values are read-only once loaded.
type Song struct {
	TrackName  string
	Artists    string
	TrackGenre string
	Popularity float64
	// Audio features, [0, 1] except Tempo (BPM)
	Danceability float64
	Energy       float64
	Valence      float64
	Tempo        float64
	Acousticness float64
	Liveness     float64
}

// Features returns the subset of audio features used by Classify.
func (s Song) Features() Features {
	return Features{
		Valence:      s.Valence,
		Energy:       s.Energy,
		Tempo:        s.Tempo,
		Danceability: s.Danceability,
	}
}
