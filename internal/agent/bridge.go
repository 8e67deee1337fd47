package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"newsticker/session"
)

// ErrEmptyResponse means the turn finished without emitting any text.
var ErrEmptyResponse = errors.New("no response received from agent")

// BridgeConfig controls session checkout for a turn.
type BridgeConfig struct {
	Quota int

	// Isolated gives every turn a scratch session that is deleted on exit
	// instead of reusing the managed singleton.
	Isolated   bool
	AppName    string
	UserID     string
	SessionTTL time.Duration
}

// Bridge executes one agent turn to completion, collecting the streamed
// text fragments into a single reply. It does not enforce the quota: that
// stays advisory, carried by the instructions the runner works under.
type Bridge struct {
	runner   TurnRunner
	sessions *session.Manager
	store    session.Store
	cfg      BridgeConfig
	logger   *log.Logger
	now      func() time.Time
}

func NewBridge(runner TurnRunner, sessions *session.Manager, store session.Store, cfg BridgeConfig, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(log.Writer(), "[BRIDGE] ", log.LstdFlags)
	}
	return &Bridge{
		runner:   runner,
		sessions: sessions,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Run checks out a session, runs one turn under it and releases whatever
// the checkout acquired, on every exit path.
func (b *Bridge) Run(ctx context.Context, prompt string) (string, error) {
	h, release, err := b.checkout(ctx)
	if err != nil {
		return "", err
	}
	defer release()
	return b.RunTurn(ctx, h, prompt)
}

// RunTurn sends prompt as a single turn under h and accumulates every text
// fragment, in emission order, into one reply. A turn that terminates with
// nothing accumulated fails with ErrEmptyResponse.
func (b *Bridge) RunTurn(ctx context.Context, h session.Handle, prompt string) (string, error) {
	message := fmt.Sprintf("%s\n%s\n[Refresh timestamp: %s]",
		prompt, b.directive(), b.now().Format("2006-01-02 15:04:05"))

	var reply strings.Builder
	var turnErr error
	for ev := range b.runner.Run(ctx, h, message) {
		switch ev.Type {
		case EventText:
			reply.WriteString(ev.Text)
		case EventToolCall:
			b.logger.Printf("tool call %s: %s", ev.Tool, ev.Note)
		case EventError:
			if turnErr == nil {
				turnErr = ev.Err
			}
		}
	}

	if turnErr != nil {
		return "", turnErr
	}
	if reply.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return reply.String(), nil
}

func (b *Bridge) checkout(ctx context.Context) (session.Handle, func(), error) {
	if b.cfg.Isolated {
		h, err := b.store.Create(ctx, b.cfg.AppName, b.cfg.UserID, b.cfg.SessionTTL)
		if err != nil {
			return session.Handle{}, nil, fmt.Errorf("%w: %v", session.ErrSessionUnavailable, err)
		}
		release := func() {
			if err := b.store.Delete(context.Background(), h); err != nil {
				b.logger.Printf("session cleanup warning: %v", err)
			}
		}
		return h, release, nil
	}

	h, err := b.sessions.Acquire(ctx)
	if err != nil {
		return session.Handle{}, nil, err
	}
	return h, func() {}, nil
}

func (b *Bridge) directive() string {
	return fmt.Sprintf(
		"Return exactly %d items, from today only, sorted newest first, each as Date:/Source:/Headline: lines separated by blank lines.",
		b.cfg.Quota)
}
