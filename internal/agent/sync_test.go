package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"newsticker/session"
)

// echoRunner replies with the message it was given, and can hold every
// turn open until released so tests can force calls to overlap.
type echoRunner struct {
	started chan struct{}
	release chan struct{}
}

func (r *echoRunner) Run(ctx context.Context, _ session.Handle, message string) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		if r.started != nil {
			r.started <- struct{}{}
		}
		if r.release != nil {
			<-r.release
		}
		select {
		case out <- Event{Type: EventText, Text: "echo: " + message}:
		case <-ctx.Done():
		}
	}()
	return out
}

func TestRunBlockingReturnsText(t *testing.T) {
	runner := &scriptedRunner{events: []Event{{Type: EventText, Text: "five items"}}}
	adapter := NewAdapter(newTestBridge(runner, &countingStore{}, false))

	got := adapter.RunBlocking("today's AI news")
	if got != "five items" {
		t.Fatalf("expected turn output, got %q", got)
	}
}

func TestRunBlockingConvertsFailureToSentinel(t *testing.T) {
	runner := &scriptedRunner{events: []Event{{Type: EventError, Err: errors.New("backend unreachable")}}}
	adapter := NewAdapter(newTestBridge(runner, &countingStore{}, false))

	got := adapter.RunBlocking("today's AI news")
	if !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("expected sentinel prefix, got %q", got)
	}
	if !strings.Contains(got, "backend unreachable") {
		t.Fatalf("sentinel should carry the cause, got %q", got)
	}
}

func TestRunBlockingEmptyTurnSentinel(t *testing.T) {
	runner := &scriptedRunner{}
	adapter := NewAdapter(newTestBridge(runner, &countingStore{}, false))

	got := adapter.RunBlocking("today's AI news")
	if !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("expected sentinel for empty turn, got %q", got)
	}
}

func TestRunBlockingTearsDownScope(t *testing.T) {
	runner := &scriptedRunner{events: []Event{{Type: EventText, Text: "ok"}}}
	adapter := NewAdapter(newTestBridge(runner, &countingStore{}, false))

	_ = adapter.RunBlocking("news")

	select {
	case <-runner.lastCtx.Done():
	default:
		t.Fatal("per-call context must be cancelled once the call returns")
	}
}

func TestConcurrentCallsUseIndependentScopes(t *testing.T) {
	runner := &echoRunner{started: make(chan struct{}, 2), release: make(chan struct{})}
	adapter := NewAdapter(newTestBridge(runner, &countingStore{}, false))

	var wg sync.WaitGroup
	results := make([]string, 2)
	prompts := []string{"first request", "second request"}
	for i := range prompts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = adapter.RunBlocking(prompts[i])
		}(i)
	}

	// both turns are in flight before either is allowed to finish
	<-runner.started
	<-runner.started
	close(runner.release)
	wg.Wait()

	for i, prompt := range prompts {
		if !strings.Contains(results[i], prompt) {
			t.Fatalf("call %d got the wrong turn output: %q", i, results[i])
		}
		if strings.HasPrefix(results[i], "Error:") {
			t.Fatalf("call %d failed: %q", i, results[i])
		}
	}
}
