package session

import (
	"context"
	"errors"
	"time"
)

// Handle correlates a sequence of agent turns with one logical
// conversation. Handles are plain value identifiers; once issued they are
// never mutated, so they can be passed between goroutines without locking.
type Handle struct {
	App    string
	UserID string
	ID     string
}

// Store is the backing conversation store.
//
// Validate is a best-effort liveness check: false means "recreate",
// whatever the underlying reason (expired, evicted, store hiccup). Only
// Create surfaces errors, because without a session there is nothing to
// run a turn against.
type Store interface {
	Create(ctx context.Context, app, userID string, ttl time.Duration) (Handle, error)
	Validate(ctx context.Context, h Handle) bool
	Delete(ctx context.Context, h Handle) error
}

// ErrSessionUnavailable means the store itself could not be reached while
// creating a session. Fatal for the current call.
var ErrSessionUnavailable = errors.New("session store unavailable")
