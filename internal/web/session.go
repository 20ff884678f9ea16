package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

const sessionCookie = "groupzip_session"

// runSummary is what a session remembers about its last run.
type runSummary struct {
	Directory string
	Archives  []string
	Count     int
	Skipped   int
	Failures  []string
}

// SessionStore keeps the last run of each browser session in memory. Nothing
// is persisted across restarts.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]runSummary
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]runSummary)}
}

// id returns the session id carried by r, issuing a new cookie when r has none.
func (s *SessionStore) id(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *SessionStore) save(id string, summary runSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = summary
}

func (s *SessionStore) load(r *http.Request) (runSummary, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return runSummary{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.sessions[c.Value]
	return summary, ok
}
