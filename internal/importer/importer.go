// Package importer turns external song sources into rows for the songs table.
package importer

import (
	"errors"

	"github.com/justestif/spotify-mood-explorer/internal/db"
)

// Common errors.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrMissingGenre  = errors.New("genre label is required")
)

// ImportStats counts what happened to each input row.
type ImportStats struct {
	Rows       int // rows read from the source
	Incomplete int // dropped for a missing value
	Invalid    int // dropped because a value could not be parsed
	Duplicates int // dropped as a repeat of an earlier (track_name, artists)
	Kept       int
}

type songKey struct {
	trackName string
	artists   string
}

// dedupe drops records whose (track name, artists) pair appeared earlier,
// keeping the first occurrence.
func dedupe(records []db.Record) ([]db.Record, int) {
	seen := make(map[songKey]struct{}, len(records))
	kept := records[:0]
	dropped := 0

	for _, r := range records {
		k := songKey{trackName: r.TrackName, artists: r.Artists}
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, r)
	}
	return kept, dropped
}
