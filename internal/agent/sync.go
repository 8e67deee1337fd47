package agent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Adapter exposes the pipeline to plain synchronous callers, one worker
// per inbound HTTP request. Each call gets its own execution scope;
// concurrent calls may share the managed session but never a scope.
type Adapter struct {
	bridge *Bridge
}

func NewAdapter(bridge *Bridge) *Adapter {
	return &Adapter{bridge: bridge}
}

// RunBlocking runs one full orchestration turn and always returns text:
// the raw agent reply on success, or an "Error: ..." sentinel on any
// failure. The uniform text contract is a deliberate simplification at
// this boundary.
func (a *Adapter) RunBlocking(prompt string) string {
	scope := newScope()
	defer scope.Close()

	text, err := scope.run(a.bridge, prompt)
	if err != nil {
		return "Error: " + err.Error()
	}
	return text
}

// scope is the per-call execution context: one context tree plus the
// goroutines started under it. Close cancels the tree and waits them out,
// so a finished call never leaks work into the next one.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

func newScope() *scope {
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	return &scope{ctx: ctx, cancel: cancel, group: group}
}

func (s *scope) run(b *Bridge, prompt string) (string, error) {
	var text string
	s.group.Go(func() error {
		var err error
		text, err = b.Run(s.ctx, prompt)
		return err
	})
	if err := s.group.Wait(); err != nil {
		return "", err
	}
	return text, nil
}

func (s *scope) Close() {
	s.cancel()
	_ = s.group.Wait()
}
