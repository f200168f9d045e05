// Package web provides the HTTP server and web UI for the mood explorer.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookieName = "session_id"
	sessionTTL        = 24 * time.Hour
)

// Session holds a visitor's current selections. Handlers read them and pass
// them to the explorer as plain arguments.
type Session struct {
	ID        string
	Genre     string
	Mood      string
	CreatedAt time.Time
}

// SessionStore manages visitor sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new empty session.
func (s *SessionStore) Create() *Session {
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns a copy of the session with id, or nil if it is unknown or
// expired.
func (s *SessionStore) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}

	// Check if session has expired
	if s.now().Sub(session.CreatedAt) > sessionTTL {
		return nil
	}

	c := *session
	return &c
}

// Update applies fn to the stored session with id. Unknown ids are ignored.
func (s *SessionStore) Update(id string, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		fn(session)
	}
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Prune drops expired sessions and returns how many were removed.
func (s *SessionStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.now().Sub(session.CreatedAt) > sessionTTL {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// GetFromRequest extracts the session from the request cookie.
func (s *SessionStore) GetFromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return s.Get(cookie.Value)
}

// GetOrCreate returns the request's session, creating one and setting its
// cookie when there is none.
func (s *SessionStore) GetOrCreate(w http.ResponseWriter, r *http.Request) *Session {
	if session := s.GetFromRequest(r); session != nil {
		return session
	}
	session := s.Create()
	s.SetCookie(w, session)
	return session
}

// SetCookie sets the session cookie on the response.
func (s *SessionStore) SetCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}

// ClearCookie removes the session cookie from the response.
func (s *SessionStore) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
