package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"newsticker/session"
)

// Store backs conversation liveness with redis so several ticker
// instances can share one conversation identity. Each session is a single
// key holding empty meta, expired by redis itself.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), ttl)
}

// NewWithClient is used by tests and by callers that already hold a client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(h session.Handle) string {
	return fmt.Sprintf("session:%s:%s:%s", h.App, h.UserID, h.ID)
}

func (s *Store) Create(ctx context.Context, app, userID string, ttl time.Duration) (session.Handle, error) {
	h := session.Handle{App: app, UserID: userID, ID: uuid.NewString()}
	if err := s.client.Set(ctx, key(h), "{}", ttl).Err(); err != nil {
		return session.Handle{}, fmt.Errorf("redis create session: %w", err)
	}
	return h, nil
}

// Validate treats every failure, including "not found" and a dead
// connection, as "needs recreation". A live session gets its TTL bumped.
func (s *Store) Validate(ctx context.Context, h session.Handle) bool {
	exists, err := s.client.Exists(ctx, key(h)).Result()
	if err != nil || exists == 0 {
		return false
	}
	_ = s.client.Expire(ctx, key(h), s.ttl).Err()
	return true
}

func (s *Store) Delete(ctx context.Context, h session.Handle) error {
	return s.client.Del(ctx, key(h)).Err()
}

// Ping verifies connectivity at wiring time, like the scheduler's redis
// check in the serve path.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
