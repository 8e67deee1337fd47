package server

import (
	"context"
	"fmt"
	"log"

	"newsticker/config"
	"newsticker/internal/agent"
	"newsticker/provider"
	"newsticker/session"
	"newsticker/session/inmemory"
	"newsticker/session/redisstore"
	"newsticker/tools/web_search"
)

// BuildPipeline assembles the orchestration stack from configuration:
// LLM provider, optional web searcher, conversation store, session
// manager, runner, bridge and the blocking adapter the handlers call.
// Shared by the serve and fetch commands.
func BuildPipeline(cfg *config.Config, logger *log.Logger) (*agent.Adapter, error) {
	if cfg.Providers.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured (providers.openai.api_key)")
	}
	llm, err := provider.NewProvider(provider.OpenAI, provider.Options{
		APIKey:      cfg.Providers.OpenAI.APIKey,
		Model:       cfg.Providers.OpenAI.CompletionModel,
		Temperature: cfg.Providers.OpenAI.Temperature,
		MaxTokens:   cfg.Providers.OpenAI.MaxTokens,
		Timeout:     cfg.Providers.OpenAI.Timeout,
	})
	if err != nil {
		return nil, err
	}

	var searcher web_search.WebSearcher
	if cfg.Search.APIKey != "" {
		searcher, err = web_search.NewWebSearcher(web_search.Provider(cfg.Search.Provider), cfg.Search.APIKey)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Printf("no search api key configured, falling back to provider-only generation")
	}

	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		rs := redisstore.New(cfg.Session.Redis.Addr(), cfg.Session.Redis.Password, cfg.Session.Redis.DB, cfg.Session.TTL)
		if err := rs.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("redis connection failed (%s): %w", cfg.Session.Redis.Addr(), err)
		}
		store = rs
	default:
		store = inmemory.New()
	}

	mgr := session.NewManager(store, cfg.Agent.AppName, cfg.Agent.UserID, cfg.Session.TTL)
	runner := agent.NewRunner(llm, searcher, agent.RunnerConfig{
		Quota:       cfg.Agent.Quota,
		MaxAttempts: cfg.Agent.MaxAttempts,
		MaxResults:  cfg.Search.MaxResults,
		RecencyDays: cfg.Search.RecencyDays,
		Sites:       cfg.Search.Sites,
	}, logger)
	bridge := agent.NewBridge(runner, mgr, store, agent.BridgeConfig{
		Quota:      cfg.Agent.Quota,
		Isolated:   cfg.Agent.IsolatedSessions,
		AppName:    cfg.Agent.AppName,
		UserID:     cfg.Agent.UserID,
		SessionTTL: cfg.Session.TTL,
	}, logger)
	return agent.NewAdapter(bridge), nil
}
