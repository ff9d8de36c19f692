package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/permitsearch"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie that carries the session ID.
const SessionCookieName = "permitsearch_session"

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// pageState is everything the page shows for one visitor: the lookup session
// and the property search form, which has its own input and error.
type pageState struct {
	Lookup      permitsearch.Session
	Address     string
	PropertyErr error
}

type sessionEntry struct {
	state    pageState
	lastSeen time.Time
}

// SessionStore keeps per-visitor page state in memory. Each request reads
// the whole state and writes back a replacement; nothing is persisted.
type SessionStore struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

// NewSessionStore creates a SessionStore that forgets sessions idle for ttl.
// A ttl of zero or less means DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		Now:      time.Now,
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.sessions)
}

// load returns the state for the request's session cookie, issuing a new
// session ID when the cookie is missing or expired.
func (s *SessionStore) load(w http.ResponseWriter, r *http.Request) (string, pageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	if c, err := r.Cookie(SessionCookieName); err == nil {
		if e, ok := s.sessions[c.Value]; ok {
			e.lastSeen = s.Now()
			return c.Value, e.state
		}
	}

	id := uuid.New().String()
	s.sessions[id] = &sessionEntry{lastSeen: s.Now()}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, pageState{}
}

// save replaces the state stored for id.
func (s *SessionStore) save(id string, state pageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry{state: state, lastSeen: s.Now()}
}

// sweep drops idle sessions. Callers hold s.mu.
func (s *SessionStore) sweep() {
	cutoff := s.Now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
