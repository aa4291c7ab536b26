package news

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "biasbuster:search:"

// CachedSearcher is a read-through Redis cache in front of another Searcher.
// Redis failures are logged and the inner searcher is used directly.
type CachedSearcher struct {
	inner Searcher
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedSearcher(inner Searcher, client *redis.Client, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{inner: inner, redis: client, ttl: ttl}
}

func (c *CachedSearcher) Name() string {
	return c.inner.Name() + "+redis"
}

func (c *CachedSearcher) Search(ctx context.Context, topic, source string) ([]Article, error) {
	key := cacheKey(c.inner.Name(), topic, source)

	cached, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var articles []Article
		if jsonErr := json.Unmarshal([]byte(cached), &articles); jsonErr == nil {
			return articles, nil
		}
		slog.Warn("discarding unreadable cached search", "key", key)
	case err != redis.Nil:
		slog.Warn("search cache read failed", "key", key, "error", err)
	}

	articles, err := c.inner.Search(ctx, topic, source)
	if err != nil {
		return nil, err
	}

	// Empty results are not cached so the fallback queries run again next time.
	if len(articles) > 0 {
		data, err := json.Marshal(articles)
		if err == nil {
			err = c.redis.Set(ctx, key, data, c.ttl).Err()
		}
		if err != nil {
			slog.Warn("search cache write failed", "key", key, "error", err)
		}
	}

	return articles, nil
}

func cacheKey(searcher, topic, source string) string {
	return cacheKeyPrefix + strings.ToLower(searcher) + ":" + strings.ToLower(source) + ":" +
		strings.ToLower(strings.TrimSpace(topic))
}
