package news

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FetchFromSources searches every source concurrently. A failing source is
// logged and reported as an empty list; the others are unaffected. The
// returned map has an entry for every requested source.
func FetchFromSources(ctx context.Context, searcher Searcher, topic string, sources []string, concurrency int) map[string][]Article {
	results := make(map[string][]Article, len(sources))
	var mu sync.Mutex

	g := new(errgroup.Group)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for _, source := range sources {
		source := source
		g.Go(func() error {
			articles, err := searcher.Search(ctx, topic, source)
			if err != nil {
				slog.Error("error fetching articles", "source", source, "searcher", searcher.Name(), "error", err)
				articles = []Article{}
			}
			if articles == nil {
				articles = []Article{}
			}

			mu.Lock()
			results[source] = articles
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}
