package news

import (
	"context"
	"errors"
	"time"
)

// ErrMissingAPIKey is returned when a searcher needs a credential that was not configured.
var ErrMissingAPIKey = errors.New("news search API key is not configured")

type Article struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Searcher finds articles about topic published by source. An empty result is
// not an error.
type Searcher interface {
	Search(ctx context.Context, topic, source string) ([]Article, error)
	Name() string
}
