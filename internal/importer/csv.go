package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/justestif/spotify-mood-explorer/internal/db"
)

// FromCSV reads the Kaggle Spotify tracks dataset layout: a header row naming
// the db.Columns, optionally preceded by an unnamed index column. Rows with an
// empty or NA field ("nan", "NULL", "N/A" and the like) are dropped, as are
// rows that cannot be parsed or hold a non-finite number, and repeats of an
// earlier (track_name, artists) pair.
func FromCSV(r io.Reader) ([]db.Record, ImportStats, error) {
	var stats ImportStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, fmt.Errorf("reading header: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	width := len(header)
	index, named, err := columnIndex(header)
	if err != nil {
		return nil, stats, err
	}

	var records []db.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		if len(row) != width || hasMissing(row, named) {
			stats.Incomplete++
			continue
		}

		rec, err := parseRecord(row, index)
		if err != nil {
			stats.Invalid++
			continue
		}
		records = append(records, rec)
	}

	records, stats.Duplicates = dedupe(records)
	stats.Kept = len(records)
	return records, stats, nil
}

// columnIndex maps each db column to its position in header and returns the
// positions of all named columns.
func columnIndex(header []string) (map[string]int, []int, error) {
	index := make(map[string]int, len(header))
	var named []int
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" || name == "Unnamed: 0" {
			continue
		}
		index[name] = i
		named = append(named, i)
	}

	var missing []string
	for _, col := range db.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, named, nil
}

// naTokens are the cells pandas read_csv treats as missing by default.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func hasMissing(row []string, positions []int) bool {
	for _, i := range positions {
		if _, ok := naTokens[strings.TrimSpace(row[i])]; ok {
			return true
		}
	}
	return false
}

// fieldParser accumulates the first parse error so a row can be read
// field by field.
type fieldParser struct {
	row   []string
	index map[string]int
	err   error
}

func (p *fieldParser) text(col string) string {
	return strings.TrimSpace(p.row[p.index[col]])
}

// number rejects NaN and infinities along with unparsable text.
func (p *fieldParser) number(col string) float64 {
	v, err := strconv.ParseFloat(p.text(col), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("non-finite value %q", p.text(col))
	}
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}

// integer accepts "4" and "4.0" since exported datasets often write integers as floats.
func (p *fieldParser) integer(col string) int {
	s := p.text(col)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != float64(int(f)) {
		if p.err == nil {
			p.err = fmt.Errorf("column %s: invalid integer %q", col, s)
		}
		return 0
	}
	return int(f)
}

func (p *fieldParser) flag(col string) bool {
	v, err := strconv.ParseBool(p.text(col))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}

func parseRecord(row []string, index map[string]int) (db.Record, error) {
	p := &fieldParser{row: row, index: index}

	var rec db.Record
	rec.TrackID = p.text("track_id")
	rec.Artists = p.text("artists")
	rec.AlbumName = p.text("album_name")
	rec.TrackName = p.text("track_name")
	rec.TrackGenre = p.text("track_genre")
	rec.Popularity = p.number("popularity")
	rec.DurationMs = p.integer("duration_ms")
	rec.Explicit = p.flag("explicit")
	rec.Danceability = p.number("danceability")
	rec.Energy = p.number("energy")
	rec.Key = p.integer("key")
	rec.Loudness = p.number("loudness")
	rec.Mode = p.integer("mode")
	rec.Speechiness = p.number("speechiness")
	rec.Acousticness = p.number("acousticness")
	rec.Instrumentalness = p.number("instrumentalness")
	rec.Liveness = p.number("liveness")
	rec.Valence = p.number("valence")
	rec.Tempo = p.number("tempo")
	rec.TimeSignature = p.integer("time_signature")

	if p.err != nil {
		return db.Record{}, p.err
	}
	return rec, nil
}
