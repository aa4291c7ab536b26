package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "FRONTEND_URL", "LLM_PROVIDER", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
		"NEWS_PROVIDER", "NEWSAPI_KEY", "NEWS_REQUESTS_PER_SECOND", "SEARCH_CONCURRENCY", "SEARCH_CACHE_TTL",
		"REDIS_URL", "STORAGE_DRIVER", "DATABASE_URL", "FETCH_TIMEOUT", "DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LLMOpenAI, cfg.LLMProvider)
	assert.Equal(t, NewsAPI, cfg.NewsProvider)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 4, cfg.SearchConcurrency)
	assert.Equal(t, 15*time.Minute, cfg.SearchCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, float64(2), cfg.NewsRequestsPerSecond)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "key")
	t.Setenv("NEWS_PROVIDER", "rss")
	t.Setenv("SEARCH_CACHE_TTL", "1h")
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("SEARCH_CONCURRENCY", "8")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, LLMAnthropic, cfg.LLMProvider)
	assert.Equal(t, NewsRSS, cfg.NewsProvider)
	assert.Equal(t, time.Hour, cfg.SearchCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.SearchConcurrency)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LLMProvider:       LLMOpenAI,
			OpenAIAPIKey:      "sk",
			NewsProvider:      NewsAPI,
			StorageDriver:     StorageMemory,
			SearchConcurrency: 1,
			FetchTimeout:      time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing openai key", func(c *Config) { c.OpenAIAPIKey = "" }, true},
		{"gemini without key", func(c *Config) { c.LLMProvider = LLMGemini }, true},
		{"unknown provider", func(c *Config) { c.LLMProvider = "llama" }, true},
		{"unknown news provider", func(c *Config) { c.NewsProvider = "bing" }, true},
		{"postgres without url", func(c *Config) { c.StorageDriver = StoragePostgres }, true},
		{"postgres with url", func(c *Config) {
			c.StorageDriver = StoragePostgres
			c.DatabaseURL = "postgres://localhost/biasbuster"
		}, false},
		{"zero concurrency", func(c *Config) { c.SearchConcurrency = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
