package mood

import (
	"errors"
	"fmt"
	"math"
)

// Mood is a label derived from valence, energy, tempo and danceability.
type Mood string

const (
	Happy    Mood = "Happy"
	Relaxing Mood = "Relaxing"
	Workout  Mood = "Workout"
	Party    Mood = "Party"
	Other    Mood = "Other"
)

// ErrUnknownMood is returned by ParseMood for names outside the fixed set.
var ErrUnknownMood = errors.New("unknown mood")

// Features holds the audio features that decide a song's mood.
type Features struct {
	Valence      float64
	Energy       float64
	Tempo        float64
	Danceability float64
}

// Moods returns every mood in rule order, Other last.
func Moods() []Mood {
	return []Mood{Happy, Relaxing, Workout, Party, Other}
}

// ParseMood converts a user supplied name into a Mood. Matching is exact.
func ParseMood(name string) (Mood, error) {
	for _, m := range Moods() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMood, name)
}

// Classify maps audio features to a mood.
//
// Rules are checked top to bottom and the first match wins, so a song that is
// both happy and a workout track is Happy:
//
//   - valence > 0.7 and energy > 0.7        = Happy
//   - tempo < 90 and energy < 0.5           = Relaxing
//   - tempo > 120 and energy > 0.7          = Workout
//   - danceability > 0.7 and energy > 0.7   = Party
//   - anything else                         = Other
//
// All comparisons are strict. A NaN in any feature yields Other.
func Classify(f Features) Mood {
	if hasNaN(f) {
		return Other
	}

	switch {
	case f.Valence > 0.7 && f.Energy > 0.7:
		return Happy
	case f.Tempo < 90 && f.Energy < 0.5:
		return Relaxing
	case f.Tempo > 120 && f.Energy > 0.7:
		return Workout
	case f.Danceability > 0.7 && f.Energy > 0.7:
		return Party
	default:
		return Other
	}
}

func hasNaN(f Features) bool {
	return math.IsNaN(f.Valence) ||
		math.IsNaN(f.Energy) ||
		math.IsNaN(f.Tempo) ||
		math.IsNaN(f.Danceability)
}
