package importer

import (
	"errors"
	"strings"
	"testing"
)

const kaggleHeader = ",track_id,artists,album_name,track_name,popularity,duration_ms,explicit,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature,track_genre\n"

func TestFromCSV(t *testing.T) {
	input := kaggleHeader +
		"0,id1,Gen Hoshino,Comedy,Comedy,73,230666,False,0.676,0.461,1,-6.746,0,0.143,0.0322,1.01e-06,0.358,0.715,87.917,4,acoustic\n" +
		"1,id2,Ben Woodward,Ghost,Ghost - Acoustic,55,149610,True,0.42,0.166,1,-17.235,1,0.0763,0.924,5.56e-06,0.101,0.267,77.489,4.0,acoustic\n" +
		// missing album_name
		"2,id3,Somebody,,Untitled,10,1000,False,0.5,0.5,0,-5,1,0.1,0.1,0,0.1,0.5,100,4,pop\n" +
		// repeat of (Comedy, Gen Hoshino) under another genre
		"3,id4,Gen Hoshino,Comedy,Comedy,70,230666,False,0.676,0.461,1,-6.746,0,0.143,0.0322,1.01e-06,0.358,0.715,87.917,4,j-pop\n" +
		// unparsable tempo
		"4,id5,Band,Album,Song,20,1000,False,0.5,0.5,0,-5,1,0.1,0.1,0,0.1,0.5,fast,4,rock\n" +
		// short row
		"5,id6,Band\n"

	records, stats, err := FromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}

	want := ImportStats{Rows: 6, Incomplete: 2, Invalid: 1, Duplicates: 1, Kept: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.TrackName != "Comedy" || first.Artists != "Gen Hoshino" || first.TrackGenre != "acoustic" {
		t.Errorf("first record = %+v, want Comedy by Gen Hoshino (acoustic)", first.Song)
	}
	if first.Popularity != 73 || first.Danceability != 0.676 || first.Tempo != 87.917 {
		t.Errorf("first record features = %+v", first.Song)
	}
	if first.TrackID != "id1" || first.DurationMs != 230666 || first.Explicit || first.Instrumentalness != 1.01e-06 {
		t.Errorf("first record extras = %+v", first)
	}

	second := records[1]
	if !second.Explicit || second.TimeSignature != 4 || second.Mode != 1 {
		t.Errorf("second record = %+v, want explicit, time signature 4, mode 1", second)
	}
}

func TestFromCSVWithoutIndexColumn(t *testing.T) {
	input := strings.TrimPrefix(kaggleHeader, ",") +
		"id1,A,Album,Song,50,1000,False,0.5,0.5,0,-5,1,0.1,0.1,0,0.1,0.5,100,4,pop\n"

	records, stats, err := FromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if stats.Kept != 1 || len(records) != 1 {
		t.Fatalf("kept %d records, want 1", stats.Kept)
	}
	if records[0].TrackGenre != "pop" {
		t.Errorf("genre = %q, want pop", records[0].TrackGenre)
	}
}

func TestFromCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "missing column", input: "track_name,artists\nA,B\n", want: ErrMissingColumn},
		{name: "empty input", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromCSV(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("FromCSV() error = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("FromCSV() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromCSVHeaderOnly(t *testing.T) {
	records, stats, err := FromCSV(strings.NewReader(kaggleHeader))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if len(records) != 0 || stats != (ImportStats{}) {
		t.Errorf("got %d records, stats %+v, want none", len(records), stats)
	}
}

func TestFromCSVDropsMissingAndNonFiniteValues(t *testing.T) {
	tests := []struct {
		name         string
		danceability string
		want         ImportStats
	}{
		{name: "lowercase nan", danceability: "nan", want: ImportStats{Rows: 2, Incomplete: 1, Kept: 1}},
		{name: "NaN", danceability: "NaN", want: ImportStats{Rows: 2, Incomplete: 1, Kept: 1}},
		{name: "NA", danceability: "NA", want: ImportStats{Rows: 2, Incomplete: 1, Kept: 1}},
		{name: "null", danceability: "null", want: ImportStats{Rows: 2, Incomplete: 1, Kept: 1}},
		{name: "N/A", danceability: "N/A", want: ImportStats{Rows: 2, Incomplete: 1, Kept: 1}},
		{name: "padded NaN", danceability: " NaN ", want: ImportStats{Rows: 2, Incomplete: 1, Kept: 1}},
		{name: "infinity", danceability: "inf", want: ImportStats{Rows: 2, Invalid: 1, Kept: 1}},
		{name: "negative infinity", danceability: "-Infinity", want: ImportStats{Rows: 2, Invalid: 1, Kept: 1}},
		{name: "mixed case nan", danceability: "nAn", want: ImportStats{Rows: 2, Invalid: 1, Kept: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := kaggleHeader +
				"0,t1,A,Album,Bad Cell," + "50,1000,False," + tt.danceability + ",0.5,0,-5,1,0.1,0.1,0,0.1,0.5,100,4,pop\n" +
				"1,t2,B,Album,Good Cell,60,1000,False,0.7,0.5,0,-5,1,0.1,0.1,0,0.1,0.5,100,4,pop\n"

			records, stats, err := FromCSV(strings.NewReader(input))
			if err != nil {
				t.Fatalf("FromCSV() error = %v", err)
			}
			if stats != tt.want {
				t.Errorf("stats = %+v, want %+v", stats, tt.want)
			}
			if len(records) != 1 || records[0].TrackName != "Good Cell" {
				t.Fatalf("records = %+v, want only Good Cell", records)
			}
		})
	}
}

func TestFromCSVRejectsNonFiniteInteger(t *testing.T) {
	input := kaggleHeader +
		"0,t1,A,Album,Song,50,inf,False,0.5,0.5,0,-5,1,0.1,0.1,0,0.1,0.5,100,4,pop\n"

	records, stats, err := FromCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if len(records) != 0 || stats.Invalid != 1 {
		t.Errorf("got %d records, stats %+v, want the row dropped as invalid", len(records), stats)
	}
}
