package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultNewsAPIBaseURL = "https://newsapi.org"
	newsAPIPageSize       = 5
	broadenedKeep         = 2
)

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNewsAPIClient builds a client limited to rps outbound requests per second.
// rps <= 0 disables the limit.
func NewNewsAPIClient(apiKey string, rps float64) *NewsAPIClient {
	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = int(rps) + 1
	}

	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    defaultNewsAPIBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Search queries NewsAPI for topic coverage by source. A 400 on the
// source-scoped query is retried once with a domain filter; an empty result
// is retried once with a broadened free-text query.
func (c *NewsAPIClient) Search(ctx context.Context, topic, source string) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	primary := url.Values{}
	primary.Set("q", topic)
	primary.Set("sources", sourceID(source))

	resp, err := c.everything(ctx, primary)
	if err != nil {
		return nil, fmt.Errorf("newsapi %s: %w", source, err)
	}

	if resp.statusCode == http.StatusBadRequest {
		slog.Warn("newsapi rejected sources query, retrying with domains", "source", source, "body", resp.body)

		byDomain := url.Values{}
		byDomain.Set("q", topic)
		byDomain.Set("domains", slugDomain(sourceID(source)))

		resp, err = c.everything(ctx, byDomain)
		if err != nil {
			return nil, fmt.Errorf("newsapi %s domains fallback: %w", source, err)
		}
		if resp.statusCode != http.StatusOK {
			return nil, fmt.Errorf("newsapi %s domains fallback (%d): %s", source, resp.statusCode, resp.body)
		}
		return resp.articles(), nil
	}

	if resp.statusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi %s (%d): %s", source, resp.statusCode, resp.body)
	}

	articles := resp.articles()
	if len(articles) > 0 {
		return articles, nil
	}

	return c.broadened(ctx, topic, source, articles), nil
}

// broadened searches "topic source" without a source filter and keeps the
// hits reported by the target outlet. Any failure returns original.
func (c *NewsAPIClient) broadened(ctx context.Context, topic, source string, original []Article) []Article {
	q := url.Values{}
	q.Set("q", topic+" "+strings.ToLower(source))

	resp, err := c.everything(ctx, q)
	if err != nil || resp.statusCode != http.StatusOK {
		return original
	}

	all := resp.articles()
	if len(all) == 0 {
		return original
	}

	var filtered []Article
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Source), strings.ToLower(source)) {
			filtered = append(filtered, a)
		}
	}

	if len(filtered) > 0 {
		return filtered
	}

	if len(all) > broadenedKeep {
		all = all[:broadenedKeep]
	}
	return all
}

type everythingResult struct {
	statusCode int
	body       string
	raw        newsAPIResponse
}

func (r everythingResult) articles() []Article {
	articles := make([]Article, 0, len(r.raw.Articles))
	for _, item := range r.raw.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Source:      item.Source.Name,
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.URL,
			PublishedAt: publishedAt,
		})
	}
	return articles
}

// everything calls /v2/everything. Non-200 responses are returned with their
// body rather than as errors so the caller can pick a fallback.
func (c *NewsAPIClient) everything(ctx context.Context, params url.Values) (everythingResult, error) {
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", fmt.Sprint(newsAPIPageSize))
	params.Set("apiKey", c.apiKey)

	if err := c.limiter.Wait(ctx); err != nil {
		return everythingResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/everything?"+params.Encode(), nil)
	if err != nil {
		return everythingResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return everythingResult{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return everythingResult{statusCode: resp.StatusCode, body: string(body)}, nil
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return everythingResult{}, fmt.Errorf("decode: %w", err)
	}

	if raw.Status != "ok" {
		return everythingResult{}, fmt.Errorf("non-ok status %q: %s", raw.Status, raw.Message)
	}

	return everythingResult{statusCode: resp.StatusCode, raw: raw}, nil
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
