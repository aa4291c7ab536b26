package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	LLMOpenAI    = "openai"
	LLMAnthropic = "anthropic"
	LLMGemini    = "gemini"

	NewsAPI = "newsapi"
	NewsRSS = "rss"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	// HTTP
	Port        string
	FrontendURL string

	// Completion service
	LLMProvider     string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string

	// News search
	NewsProvider          string
	NewsAPIKey            string
	NewsRequestsPerSecond float64
	SearchConcurrency     int
	SearchCacheTTL        time.Duration
	RedisURL              string // empty disables the search cache

	// Storage
	StorageDriver string
	DatabaseURL   string

	// Extraction
	FetchTimeout time.Duration

	Debug bool
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		FrontendURL:           os.Getenv("FRONTEND_URL"),
		LLMProvider:           strings.ToLower(getEnvOrDefault("LLM_PROVIDER", LLMOpenAI)),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:       os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		NewsProvider:          strings.ToLower(getEnvOrDefault("NEWS_PROVIDER", NewsAPI)),
		NewsAPIKey:            os.Getenv("NEWSAPI_KEY"),
		NewsRequestsPerSecond: getEnvFloatOrDefault("NEWS_REQUESTS_PER_SECOND", 2),
		SearchConcurrency:     getEnvIntOrDefault("SEARCH_CONCURRENCY", 4),
		SearchCacheTTL:        getEnvDurationOrDefault("SEARCH_CACHE_TTL", 15*time.Minute),
		RedisURL:              os.Getenv("REDIS_URL"),
		StorageDriver:         strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		FetchTimeout:          getEnvDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
		Debug:                 os.Getenv("DEBUG") == "true",
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case LLMOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is %q", c.LLMProvider)
		}
	case LLMAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is %q", c.LLMProvider)
		}
	case LLMGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is %q", c.LLMProvider)
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of openai, anthropic, gemini")
	}

	if c.NewsProvider != NewsAPI && c.NewsProvider != NewsRSS {
		return fmt.Errorf("NEWS_PROVIDER must be 'newsapi' or 'rss'")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be 'memory' or 'postgres'")
	}

	if c.SearchConcurrency < 1 {
		return fmt.Errorf("SEARCH_CONCURRENCY must be at least 1")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	return nil
}

// LogLevel is debug when DEBUG=true.
func (c *Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
