package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

const appTitle = "Spotify Mood Explorer"

// Explorer is the subset of the explorer service the handlers use.
type Explorer interface {
	Genres(ctx context.Context) ([]string, error)
	SongsByMood(ctx context.Context, genre string, m mood.Mood) ([]mood.LabeledSong, error)
	GenrePopularityImage(ctx context.Context) ([]byte, error)
	DanceabilityImage(ctx context.Context, genre string) ([]byte, error)
	ContentType() string
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	explorer  Explorer
	sessions  *SessionStore
	templates *Templates
	log       *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(explorer Explorer, sessions *SessionStore, templates *Templates, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		explorer:  explorer,
		sessions:  sessions,
		templates: templates,
		log:       log,
	}
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	genres, err := h.explorer.Genres(r.Context())
	if err != nil {
		h.serverError(w, r, "listing genres", err)
		return
	}

	data := HomePageData{
		PageData: PageData{
			Title:       appTitle,
			CurrentPath: r.URL.Path,
			Flash:       &FlashMessage{Type: "info", Message: "Please select a genre."},
		},
		Genres: genres,
	}
	if session := h.sessions.GetFromRequest(r); session != nil {
		data.Selected = session.Genre
	}

	h.render(w, r, "home", data)
}

// SubmitGenre stores the chosen genre and redirects to its page (POST /submit_genre).
func (h *Handlers) SubmitGenre(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	genre := strings.TrimSpace(r.PostFormValue("genre"))
	if genre == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	session := h.sessions.GetOrCreate(w, r)
	h.sessions.Update(session.ID, func(s *Session) {
		s.Genre = genre
		s.Mood = ""
	})

	http.Redirect(w, r, "/api/songs/"+url.PathEscape(genre), http.StatusFound)
}

// GenrePage shows the mood form and charts for a genre (GET /api/songs/{genre}).
func (h *Handlers) GenrePage(w http.ResponseWriter, r *http.Request) {
	genre := genreParam(r)
	if genre == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	// Visiting a genre page directly selects that genre.
	session := h.sessions.GetOrCreate(w, r)
	h.sessions.Update(session.ID, func(s *Session) {
		if s.Genre != genre {
			s.Genre = genre
			s.Mood = ""
		}
	})

	data := GenrePageData{
		PageData: PageData{
			Title:       appTitle,
			CurrentPath: r.URL.Path,
		},
		Genre: genre,
		Moods: mood.Moods(),
	}

	h.render(w, r, "genre", data)
}

// SubmitMood lists the session genre's songs with the chosen mood (POST /submit_mood).
func (h *Handlers) SubmitMood(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil || session.Genre == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	m, err := mood.ParseMood(r.PostFormValue("mood"))
	if err != nil {
		http.Error(w, "Unknown mood", http.StatusBadRequest)
		return
	}

	songs, err := h.explorer.SongsByMood(r.Context(), session.Genre, m)
	if err != nil {
		h.serverError(w, r, "filtering songs by mood", err)
		return
	}

	h.sessions.Update(session.ID, func(s *Session) {
		s.Mood = string(m)
	})

	data := MoodPageData{
		PageData: PageData{
			Title:       appTitle,
			CurrentPath: r.URL.Path,
		},
		Genre: session.Genre,
		Mood:  m,
		Moods: mood.Moods(),
		Songs: songRows(songs),
	}
	if len(songs) == 0 {
		data.Flash = &FlashMessage{Type: "warning", Message: "No songs match this mood."}
	}

	h.render(w, r, "mood", data)
}

// StartOver forgets the visitor's genre and mood (POST /start_over).
func (h *Handlers) StartOver(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(session.ID)
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// FigGenrePopularity serves the genre popularity chart (GET /fig/genre-popularity).
func (h *Handlers) FigGenrePopularity(w http.ResponseWriter, r *http.Request) {
	img, err := h.explorer.GenrePopularityImage(r.Context())
	if err != nil {
		h.serverError(w, r, "rendering genre popularity chart", err)
		return
	}
	h.writeImage(w, img)
}

// FigDanceability serves the danceability prediction chart
// (GET /fig/danceability-prediction/{genre}).
func (h *Handlers) FigDanceability(w http.ResponseWriter, r *http.Request) {
	img, err := h.explorer.DanceabilityImage(r.Context(), genreParam(r))
	if err != nil {
		h.serverError(w, r, "rendering danceability chart", err)
		return
	}
	h.writeImage(w, img)
}

// Healthz reports that the server is up (GET /healthz).
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// NotFound sends unknown paths back to the home page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		h.log.Error("rendering template",
			zap.String("page", page),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

func (h *Handlers) writeImage(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", h.explorer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error(op,
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	msg := "Internal server error"
	if errors.Is(err, db.ErrStorage) {
		msg = "Storage error"
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

// genreParam returns the decoded {genre} route parameter.
func genreParam(r *http.Request) string {
	genre := chi.URLParam(r, "genre")
	if r.URL.RawPath == "" {
		return genre
	}
	decoded, err := url.PathUnescape(genre)
	if err != nil {
		return genre
	}
	return decoded
}
