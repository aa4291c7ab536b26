package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-playground/assert/v2"
	"golang.org/x/time/rate"
)

type recordedQueries struct {
	mu      sync.Mutex
	queries []url.Values
}

func (r *recordedQueries) add(q url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func newTestNewsAPI(t *testing.T, handler func(q url.Values, w http.ResponseWriter)) (*NewsAPIClient, *recordedQueries) {
	t.Helper()

	rec := &recordedQueries{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r.URL.Query())
		handler(r.URL.Query(), w)
	}))
	t.Cleanup(srv.Close)

	client := &NewsAPIClient{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	return client, rec
}

func writeArticles(w http.ResponseWriter, items ...map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       "ok",
		"totalResults": len(items),
		"articles":     items,
	})
}

func item(source, title string) map[string]interface{} {
	return map[string]interface{}{
		"source":      map[string]interface{}{"id": nil, "name": source},
		"title":       title,
		"description": "desc",
		"content":     "content",
		"url":         "https://example.com/" + title,
		"publishedAt": "2026-02-26T11:02:00Z",
	}
}

func TestNewsAPISearch_Primary(t *testing.T) {
	client, rec := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		writeArticles(w, item("CNN", "Budget deal reached"))
	})

	articles, err := client.Search(context.Background(), "budget talks", "CNN")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Budget deal reached", articles[0].Title)
	assert.Equal(t, "CNN", articles[0].Source)
	assert.Equal(t, 2026, articles[0].PublishedAt.Year())

	assert.Equal(t, 1, len(rec.queries))
	assert.Equal(t, "cnn", rec.queries[0].Get("sources"))
	assert.Equal(t, "budget talks", rec.queries[0].Get("q"))
	assert.Equal(t, "5", rec.queries[0].Get("pageSize"))
	assert.Equal(t, "test-key", rec.queries[0].Get("apiKey"))
}

func TestNewsAPISearch_MissingKey(t *testing.T) {
	client := NewNewsAPIClient("", 0)

	_, err := client.Search(context.Background(), "budget", "CNN")

	assert.Equal(t, true, errors.Is(err, ErrMissingAPIKey))
}

func TestNewsAPISearch_BadRequestFallsBackToDomains(t *testing.T) {
	client, rec := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		if q.Get("sources") != "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":"error","message":"bad source"}`))
			return
		}
		writeArticles(w, item("The Washington Post", "Senate vote"))
	})

	articles, err := client.Search(context.Background(), "senate", "Washington Post")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, 2, len(rec.queries))
	assert.Equal(t, "the-washington-post", rec.queries[0].Get("sources"))
	assert.Equal(t, "washington.post.com", rec.queries[1].Get("domains"))
}

func TestNewsAPISearch_BadRequestFallbackFails(t *testing.T) {
	client, _ := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Search(context.Background(), "senate", "NPR")

	assert.NotEqual(t, nil, err)
}

func TestNewsAPISearch_ServerErrorIsReturned(t *testing.T) {
	client, rec := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "senate", "NPR")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, len(rec.queries))
}

func TestNewsAPISearch_EmptyBroadensAndFilters(t *testing.T) {
	client, rec := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		if q.Get("sources") != "" {
			writeArticles(w)
			return
		}
		writeArticles(w,
			item("Reuters", "Other outlet"),
			item("Fox News", "Matching outlet"),
		)
	})

	articles, err := client.Search(context.Background(), "budget", "Fox News")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Matching outlet", articles[0].Title)
	assert.Equal(t, "budget fox news", rec.queries[1].Get("q"))
	assert.Equal(t, "", rec.queries[1].Get("sources"))
}

func TestNewsAPISearch_EmptyBroadenedKeepsFirstTwo(t *testing.T) {
	client, _ := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		if q.Get("sources") != "" {
			writeArticles(w)
			return
		}
		writeArticles(w, item("A", "one"), item("B", "two"), item("C", "three"))
	})

	articles, err := client.Search(context.Background(), "budget", "NPR")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, "one", articles[0].Title)
}

func TestNewsAPISearch_EmptyEverywhere(t *testing.T) {
	client, rec := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		writeArticles(w)
	})

	articles, err := client.Search(context.Background(), "budget", "NPR")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
	assert.Equal(t, 2, len(rec.queries))
}

func TestNewsAPISearch_NonOKStatus(t *testing.T) {
	client, _ := newTestNewsAPI(t, func(q url.Values, w http.ResponseWriter) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "error", "message": "rate limited"})
	})

	_, err := client.Search(context.Background(), "budget", "NPR")

	assert.NotEqual(t, nil, err)
}
