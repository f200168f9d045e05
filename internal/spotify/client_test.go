package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/zmb3/spotify/v2"
)

// fakeAPI serves a two page playlist and the audio features endpoint.
type fakeAPI struct {
	srv *httptest.Server

	mu           sync.Mutex
	featureCalls [][]string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/playlists/p1/tracks", f.playlist)
	mux.HandleFunc("/audio-features", f.audioFeatures)
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) client() *Client {
	api := spotify.New(f.srv.Client(), spotify.WithBaseURL(f.srv.URL+"/"))
	return New(api, nil)
}

func (f *fakeAPI) playlist(w http.ResponseWriter, r *http.Request) {
	var body string
	if r.URL.Query().Get("offset") == "2" {
		body = `{"items":[
			{"track":{"type":"track","id":"t3","name":"Three","artists":[{"name":"C"}],"album":{"name":"Z"},"popularity":10,"duration_ms":3000}}
		],"next":""}`
	} else {
		body = fmt.Sprintf(`{"items":[
			{"track":{"type":"track","id":"t1","name":"One","artists":[{"name":"A"},{"name":"B"}],"album":{"name":"X"},"popularity":61,"duration_ms":1000,"explicit":true}},
			{"is_local":true,"track":{"type":"track","id":"","name":"Local File","artists":[]}}
		],"next":%q}`, f.srv.URL+"/playlists/p1/tracks?offset=2")
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) audioFeatures(w http.ResponseWriter, r *http.Request) {
	ids := strings.Split(r.URL.Query().Get("ids"), ",")

	f.mu.Lock()
	f.featureCalls = append(f.featureCalls, ids)
	f.mu.Unlock()

	features := make([]any, len(ids))
	for i, id := range ids {
		if id == "missing" {
			continue // null entry
		}
		features[i] = map[string]any{
			"id":           id,
			"danceability": 0.5,
			"energy":       0.25,
			"tempo":        100,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"audio_features": features})
}

func TestFetchPlaylistTracks(t *testing.T) {
	api := newFakeAPI(t)

	tracks, err := api.client().FetchPlaylistTracks(context.Background(), "p1")
	if err != nil {
		t.Fatalf("FetchPlaylistTracks() error = %v", err)
	}

	want := []Track{
		{ID: "t1", Name: "One", Artists: "A, B", Album: "X", Popularity: 61, DurationMs: 1000, Explicit: true},
		{ID: "t3", Name: "Three", Artists: "C", Album: "Z", Popularity: 10, DurationMs: 3000},
	}
	if len(tracks) != len(want) {
		t.Fatalf("got %d tracks, want %d: %+v", len(tracks), len(want), tracks)
	}
	for i := range want {
		if tracks[i] != want[i] {
			t.Errorf("track %d = %+v, want %+v", i, tracks[i], want[i])
		}
	}
}

func TestFetchAudioFeaturesBatches(t *testing.T) {
	api := newFakeAPI(t)

	ids := make([]string, 150)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%03d", i)
	}
	ids[42] = "missing"

	features, err := api.client().FetchAudioFeatures(context.Background(), ids)
	if err != nil {
		t.Fatalf("FetchAudioFeatures() error = %v", err)
	}

	if len(api.featureCalls) != 2 {
		t.Fatalf("got %d requests, want 2", len(api.featureCalls))
	}
	if len(api.featureCalls[0]) != 100 || len(api.featureCalls[1]) != 50 {
		t.Errorf("batch sizes = %d, %d, want 100, 50", len(api.featureCalls[0]), len(api.featureCalls[1]))
	}
	if len(features) != 149 {
		t.Errorf("got %d features, want 149", len(features))
	}
	if _, ok := features["missing"]; ok {
		t.Error("track without features should be absent")
	}
	if got := features["id149"]; got.Danceability != 0.5 || got.Energy != 0.25 || got.Tempo != 100 {
		t.Errorf("features[id149] = %+v", got)
	}
}

func TestFetchAudioFeaturesEmpty(t *testing.T) {
	c := New(nil, nil)

	features, err := c.FetchAudioFeatures(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchAudioFeatures() error = %v", err)
	}
	if len(features) != 0 {
		t.Errorf("got %d features, want 0", len(features))
	}
}
