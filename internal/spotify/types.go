package spotify

// Track contains the catalog metadata kept for a playlist track.
type Track struct {
	ID         string
	Name       string
	Artists    string // Comma-separated artist names
	Album      string
	Popularity int
	DurationMs int
	Explicit   bool
}

// AudioFeatures contains Spotify's audio analysis values for one track.
type AudioFeatures struct {
	Acousticness     float64
	Danceability     float64
	Energy           float64
	Instrumentalness float64
	Key              int
	Liveness         float64
	Loudness         float64
	Mode             int
	Speechiness      float64
	Tempo            float64
	TimeSignature    int
	Valence          float64
}
