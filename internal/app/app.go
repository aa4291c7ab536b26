// Package app builds the service's components from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/db"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/analysis"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/config"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/handler"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/metrics"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/repository"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/extract"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/llm"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/news"
)

type App struct {
	Config   *config.Config
	Storage  repository.Storage
	Searcher news.Searcher
	Analyzer *analysis.Analyzer

	closers []func()
}

// SetupLogging installs the JSON slog handler used by every binary.
func SetupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg != nil {
		level = cfg.LogLevel()
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// New connects storage, the completion service and news search. Close
// releases whatever was opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	storage, err := a.openStorage()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Storage = storage

	completer, err := a.openCompleter(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Searcher = a.openSearcher(ctx)
	a.Analyzer = analysis.New(completer, extract.NewExtractor(cfg.FetchTimeout), a.Searcher, cfg.SearchConcurrency)

	slog.Info("app ready",
		"storage", cfg.StorageDriver,
		"llm", completer.Name(),
		"search", a.Searcher.Name(),
	)
	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStorage() (repository.Storage, error) {
	if a.Config.StorageDriver != config.StoragePostgres {
		return repository.NewMemStorage(), nil
	}

	conn, err := db.Connect(a.Config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to DB: %w", err)
	}
	a.closers = append(a.closers, func() { conn.Close() })

	if err := repository.EnsureSchema(conn); err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	return repository.NewPostgresStorage(conn), nil
}

func (a *App) openCompleter(ctx context.Context) (llm.Completer, error) {
	switch a.Config.LLMProvider {
	case config.LLMAnthropic:
		return llm.NewAnthropicClient(a.Config.AnthropicAPIKey), nil
	case config.LLMGemini:
		client, err := llm.NewGeminiClient(ctx, a.Config.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return client, nil
	default:
		return llm.NewOpenAIClient(a.Config.OpenAIAPIKey), nil
	}
}

// openSearcher picks the search backend and puts the Redis cache in front of
// it when REDIS_URL is set and reachable.
func (a *App) openSearcher(ctx context.Context) news.Searcher {
	var searcher news.Searcher
	if a.Config.NewsProvider == config.NewsRSS {
		searcher = news.NewFeedSearcher()
	} else {
		if a.Config.NewsAPIKey == "" {
			slog.Warn("NEWSAPI_KEY is not set, comparisons will be illustrative")
		}
		searcher = news.NewNewsAPIClient(a.Config.NewsAPIKey, a.Config.NewsRequestsPerSecond)
	}

	if a.Config.RedisURL == "" {
		return searcher
	}

	client, err := db.ConnectRedis(ctx, a.Config.RedisURL)
	if err != nil {
		slog.Warn("search cache disabled, redis unavailable", "error", err)
		return searcher
	}
	a.closers = append(a.closers, func() { client.Close() })

	return news.NewCachedSearcher(searcher, client, a.Config.SearchCacheTTL)
}

// Router builds the HTTP engine with middleware, API routes and /metrics.
func (a *App) Router() *gin.Engine {
	return NewRouter(a.Config.FrontendURL, a.Storage, a.Analyzer)
}

type analyzerService interface {
	handler.ArticleAnalyzer
	handler.SourceComparer
}

func NewRouter(frontendURL string, storage handler.ArticleStore, analyzer analyzerService) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5000"}
	if frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", handler.RequestIDHeader},
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "chrome-extension://")
		},
	}))
	r.Use(handler.RequestID())
	r.Use(metrics.Middleware())

	handler.Register(r, handler.NewArticleHandler(storage, analyzer), handler.NewCompareHandler(analyzer))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
