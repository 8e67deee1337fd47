package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the ticker service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Search    SearchConfig    `mapstructure:"search"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Session   SessionConfig   `mapstructure:"session"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Listen   string `mapstructure:"listen"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ProvidersConfig contains LLM provider configurations
type ProvidersConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	CompletionModel string        `mapstructure:"completion_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// SearchConfig selects and keys the web search backend used by the
// retrieval step. An empty api_key disables retrieval and the agent
// falls back to provider-only generation.
type SearchConfig struct {
	Provider    string   `mapstructure:"provider"` // brave or serper
	APIKey      string   `mapstructure:"api_key"`
	MaxResults  int      `mapstructure:"max_results"`
	RecencyDays int      `mapstructure:"recency_days"`
	Sites       []string `mapstructure:"sites"`
}

// AgentConfig shapes the orchestration turn.
type AgentConfig struct {
	AppName          string `mapstructure:"app_name"`
	UserID           string `mapstructure:"user_id"`
	Quota            int    `mapstructure:"quota"`
	MaxAttempts      int    `mapstructure:"max_attempts"`
	IsolatedSessions bool   `mapstructure:"isolated_sessions"`
}

// SessionConfig selects the conversation store.
type SessionConfig struct {
	Store string        `mapstructure:"store"` // inmemory or redis
	TTL   time.Duration `mapstructure:"ttl"`
	Redis RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func (c *Config) Validate() error {
	if c.Session.Store != "inmemory" && c.Session.Store != "redis" {
		return fmt.Errorf("session.store must be inmemory or redis, got %q", c.Session.Store)
	}
	if c.Session.Store == "redis" && c.Session.Redis.Host == "" {
		return errors.New("session.redis.host required when session.store is redis")
	}
	if c.Search.APIKey != "" && c.Search.Provider != "brave" && c.Search.Provider != "serper" {
		return fmt.Errorf("search.provider must be brave or serper, got %q", c.Search.Provider)
	}
	if c.Agent.Quota <= 0 {
		return errors.New("agent.quota must be > 0")
	}
	if c.Agent.MaxAttempts <= 0 {
		return errors.New("agent.max_attempts must be > 0")
	}
	return nil
}

// LoadConfig loads config from file. A missing file is fine; defaults and
// NEWSTICKER_* environment variables carry a demo deployment on their own.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.listen", ":5000")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("providers.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.temperature", 0.2)
	viper.SetDefault("providers.openai.max_tokens", 4096)
	viper.SetDefault("providers.openai.timeout", 30*time.Second)
	viper.SetDefault("search.provider", "brave")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.recency_days", 1)
	viper.SetDefault("search.sites", []string{
		"techcrunch.com", "theverge.com", "wired.com", "venturebeat.com", "zdnet.com",
		"reuters.com", "bloomberg.com",
	})
	viper.SetDefault("agent.app_name", "ai_news_ticker")
	viper.SetDefault("agent.user_id", "news_user")
	viper.SetDefault("agent.quota", 5)
	viper.SetDefault("agent.max_attempts", 3)
	viper.SetDefault("agent.isolated_sessions", false)
	viper.SetDefault("session.store", "inmemory")
	viper.SetDefault("session.ttl", time.Hour)
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("NEWSTICKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := config.Validate(); err != nil {
		panic(err)
	}
	return &config
}
