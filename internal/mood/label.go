package mood

// LabeledSong is a Song together with the labels derived from it.
type LabeledSong struct {
	Song
	Mood              Mood
	DanceabilityLevel Category
	EnergyLevel       Category
}

// Label returns a new collection with one LabeledSong per input song, in the
// same order. The input slice is not modified.
func Label(songs []Song) []LabeledSong {
	labeled := make([]LabeledSong, len(songs))
	for i, s := range songs {
		labeled[i] = LabeledSong{
			Song:              s,
			Mood:              Classify(s.Features()),
			DanceabilityLevel: Categorize(s.Danceability),
			EnergyLevel:       Categorize(s.Energy),
		}
	}
	return labeled
}

// FilterByMood keeps the songs labeled with m, preserving order.
func FilterByMood(songs []LabeledSong, m Mood) []LabeledSong {
	var filtered []LabeledSong
	for _, s := range songs {
		if s.Mood == m {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
