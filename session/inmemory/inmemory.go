package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsticker/session"
)

type entry struct {
	expiresAt time.Time
	ttl       time.Duration
}

// Store keeps conversation liveness in a plain map. Nothing survives a
// process restart, which is acceptable for this service.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

func New() *Store {
	return &Store{sessions: make(map[string]entry)}
}

func key(h session.Handle) string {
	return fmt.Sprintf("%s:%s:%s", h.App, h.UserID, h.ID)
}

func (s *Store) Create(_ context.Context, app, userID string, ttl time.Duration) (session.Handle, error) {
	h := session.Handle{App: app, UserID: userID, ID: uuid.NewString()}
	s.mu.Lock()
	s.sessions[key(h)] = entry{expiresAt: time.Now().Add(ttl), ttl: ttl}
	s.mu.Unlock()
	return h, nil
}

// Validate reports whether the session is still known and unexpired, and
// refreshes its TTL when it is (touch semantics, same as the redis store).
func (s *Store) Validate(_ context.Context, h session.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[key(h)]
	if !ok {
		return false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.sessions, key(h))
		return false
	}
	e.expiresAt = time.Now().Add(e.ttl)
	s.sessions[key(h)] = e
	return true
}

func (s *Store) Delete(_ context.Context, h session.Handle) error {
	s.mu.Lock()
	delete(s.sessions, key(h))
	s.mu.Unlock()
	return nil
}
