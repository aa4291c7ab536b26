package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	defaultFeedSearchURL = "https://news.google.com/rss/search"
	feedMaxItems         = 5
)

// FeedSearcher searches a news RSS search endpoint scoped with site:<domain>.
// It needs no credentials.
type FeedSearcher struct {
	searchURL string
	parser    *gofeed.Parser
}

func NewFeedSearcher() *FeedSearcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	parser.UserAgent = "BiasBuster/1.0"

	return &FeedSearcher{
		searchURL: defaultFeedSearchURL,
		parser:    parser,
	}
}

func (s *FeedSearcher) Name() string {
	return "RSS"
}

func (s *FeedSearcher) Search(ctx context.Context, topic, source string) ([]Article, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s site:%s", topic, sourceDomain(source)))
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	feed, err := s.parser.ParseURLWithContext(s.searchURL+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss search %s: %w", source, err)
	}

	articles := make([]Article, 0, feedMaxItems)
	for _, item := range feed.Items {
		if len(articles) == feedMaxItems {
			break
		}

		a := Article{
			Source:      source,
			Title:       trimOutletSuffix(item.Title),
			Description: item.Description,
			Content:     item.Content,
			URL:         item.Link,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// trimOutletSuffix drops the " - Outlet Name" tail news aggregators append to titles.
func trimOutletSuffix(title string) string {
	if i := strings.LastIndex(title, " - "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	return strings.TrimSpace(title)
}
