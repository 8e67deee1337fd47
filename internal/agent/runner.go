package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"newsticker/provider"
	"newsticker/session"
	"newsticker/tools/web_search"
	"newsticker/tools/web_search/models"
)

// TurnRunner produces the event stream for one conversational turn.
type TurnRunner interface {
	Run(ctx context.Context, h session.Handle, message string) <-chan Event
}

// ErrNoSearchResults means every search attempt came back empty, so there
// is nothing for the formatter to work with.
var ErrNoSearchResults = errors.New("search produced no results")

// RunnerConfig shapes the retrieval loop.
type RunnerConfig struct {
	Quota       int
	MaxAttempts int
	MaxResults  int
	RecencyDays int
	Sites       []string
}

// Runner executes one multi-step turn: a retrieval step over the web
// search tool, then a formatter step over the LLM, under a bounded retry
// loop that keeps widening queries until the quota of distinct headlines
// is met or attempts run out. With no searcher configured it degrades to
// provider-only generation.
type Runner struct {
	llm      provider.Provider
	searcher web_search.WebSearcher
	cfg      RunnerConfig
	logger   *log.Logger
}

func NewRunner(llm provider.Provider, searcher web_search.WebSearcher, cfg RunnerConfig, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &Runner{llm: llm, searcher: searcher, cfg: cfg, logger: logger}
}

// Run starts the turn and returns its event stream. The stream closes when
// the turn is over; a failed turn carries an error event before closing.
func (r *Runner) Run(ctx context.Context, h session.Handle, message string) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		r.runTurn(ctx, h, message, out)
	}()
	return out
}

func (r *Runner) runTurn(ctx context.Context, h session.Handle, message string, out chan<- Event) {
	emit := func(ev Event) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	r.logger.Printf("turn start session=%s", h.ID)

	if r.searcher == nil {
		text, err := r.llm.Complete(ctx, generatorInstruction(r.cfg.Quota), message)
		if err != nil {
			emit(Event{Type: EventError, Err: fmt.Errorf("generate news: %w", err)})
			return
		}
		emitFragments(emit, text)
		return
	}

	results := r.gather(ctx, emit)
	if len(results) == 0 {
		emit(Event{Type: EventError, Err: ErrNoSearchResults})
		return
	}

	formatted, err := r.llm.Complete(ctx, formatterInstruction(r.cfg.Quota), formatterInput(message, results))
	if err != nil {
		emit(Event{Type: EventError, Err: fmt.Errorf("format news: %w", err)})
		return
	}
	emitFragments(emit, formatted)
}

// gather walks the bounded retry loop, deduplicating candidates by
// normalised title. It returns whatever it has when the quota is met or
// attempts run out; a short harvest is not an error here.
func (r *Runner) gather(ctx context.Context, emit func(Event) bool) []models.Result {
	seen := make(map[string]bool)
	var ordered []models.Result

	for attempt := 0; attempt < r.cfg.MaxAttempts && len(ordered) < r.cfg.Quota; attempt++ {
		sites := r.cfg.Sites
		if attempt > 0 {
			// widen beyond the preferred sites when the first pass is short
			sites = nil
		}
		for _, q := range queriesForAttempt(attempt) {
			if len(ordered) >= r.cfg.Quota {
				break
			}
			if !emit(Event{Type: EventToolCall, Tool: "web_search", Note: q}) {
				return nil
			}
			found, err := r.searcher.Discover(ctx, q, r.cfg.MaxResults, sites, r.cfg.RecencyDays)
			if err != nil {
				r.logger.Printf("search %q failed: %v", q, err)
				continue
			}
			for _, res := range found {
				key := normaliseTitle(res.Title)
				if key == "" || seen[key] {
					continue
				}
				seen[key] = true
				ordered = append(ordered, res)
				if len(ordered) >= r.cfg.Quota {
					break
				}
			}
		}
	}
	return ordered
}

// emitFragments streams the reply block by block, preserving separators so
// the fragments concatenate back into the exact text.
func emitFragments(emit func(Event) bool, text string) {
	for _, fragment := range strings.SplitAfter(text, "\n\n") {
		if fragment == "" {
			continue
		}
		if !emit(Event{Type: EventText, Text: fragment}) {
			return
		}
	}
}

func formatterInput(message string, results []models.Result) string {
	var summaries []string
	for _, res := range results {
		summaries = append(summaries, fmt.Sprintf(
			"Title: %s\nSource: %s\nPublished: %s\nSnippet: %s",
			res.Title, sourceName(res), res.Date, res.Snippet,
		))
	}
	return fmt.Sprintf("%s\n\nCandidate articles:\n\n%s", message, strings.Join(summaries, "\n\n"))
}

func sourceName(res models.Result) string {
	if res.Source != "" {
		return res.Source
	}
	u, err := url.Parse(res.URL)
	if err != nil || u.Host == "" {
		return res.URL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func normaliseTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
