package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manager owns the process-wide conversation handle. Sessions here are an
// optimisation, not a correctness requirement: the handle is created
// lazily, reused while the store still knows it, and recreated silently
// whenever validation fails. It never reaches a terminal closed state
// within the life of the process.
type Manager struct {
	store  Store
	app    string
	userID string
	ttl    time.Duration

	mu      sync.Mutex
	current *Handle
}

func NewManager(store Store, app, userID string, ttl time.Duration) *Manager {
	return &Manager{store: store, app: app, userID: userID, ttl: ttl}
}

// Acquire returns the live singleton handle, creating or recreating it as
// needed. Creation is serialised under the manager's lock, so two callers
// racing on first use observe exactly one new session.
func (m *Manager) Acquire(ctx context.Context) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.store.Validate(ctx, *m.current) {
		return *m.current, nil
	}

	h, err := m.store.Create(ctx, m.app, m.userID, m.ttl)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	m.current = &h
	return h, nil
}

// Invalidate drops the cached handle so the next Acquire creates a fresh
// session. The store-side session, if any, is left to expire on its own.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}
