package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/analysis"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/repository"
)

type fakeStore struct {
	articles []model.Article
	article  *model.Article
	count    int
	err      error

	historyPage   int
	historyLimit  int
	historySource string
	countSource   string
	countSearch   string
}

func (f *fakeStore) CreateArticle(in model.NewArticle) (*model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	a := model.BuildArticle(1, in, time.Now())
	return &a, nil
}

func (f *fakeStore) GetArticle(id int64) (*model.Article, error) {
	return f.article, f.err
}

func (f *fakeStore) GetLatestArticle() (*model.Article, error) {
	return f.article, f.err
}

func (f *fakeStore) GetRecentArticles(limit int) ([]model.Article, error) {
	return f.articles, f.err
}

func (f *fakeStore) GetArticleHistory(page, limit int, source string) ([]model.Article, error) {
	f.historyPage, f.historyLimit, f.historySource = page, limit, source
	return f.articles, f.err
}

func (f *fakeStore) GetArticleCount(source, searchTerm string) (int, error) {
	f.countSource, f.countSearch = source, searchTerm
	return f.count, f.err
}

type fakeAnalyzer struct {
	result *model.NewArticle
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req analysis.Request) (*model.NewArticle, error) {
	f.calls++
	return f.result, f.err
}

type fakeComparer struct {
	results []model.ComparisonResult
	err     error
	topic   string
	sources []string
}

func (f *fakeComparer) CompareSources(ctx context.Context, topic string, sources []string) ([]model.ComparisonResult, error) {
	f.topic, f.sources = topic, sources
	return f.results, f.err
}

func newTestRouter(store ArticleStore, analyzer ArticleAnalyzer, comparer SourceComparer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	Register(r, NewArticleHandler(store, analyzer), NewCompareHandler(comparer))
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(w *httptest.ResponseRecorder) string {
	var res ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	return res.Message
}

func TestAnalyze_EmptyBodyIsBadRequest(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	r := newTestRouter(&fakeStore{}, analyzer, &fakeComparer{})

	w := doRequest(r, "POST", "/api/analyze", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Either URL or text must be provided", errorMessage(w))
	assert.Equal(t, 0, analyzer.calls)
}

func TestAnalyze_MalformedBody(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, &fakeComparer{})

	w := doRequest(r, "POST", "/api/analyze", `{"text": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_StoresAndReturnsArticle(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &model.NewArticle{Title: "Headline", Content: "Body", BiasScore: 40}}
	r := newTestRouter(&fakeStore{}, analyzer, &fakeComparer{})

	w := doRequest(r, "POST", "/api/analyze", `{"text": "Headline\nBody"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Headline", res["title"])
	assert.Equal(t, float64(40), res["biasScore"])
	assert.Equal(t, model.LabelLeaningConservative, res["biasLabel"])

	for _, field := range []string{"source", "url", "biasAnalysis", "neutralText", "biasedPhrases", "topics", "multidimensionalAnalysis"} {
		value, present := res[field]
		assert.Equal(t, true, present)
		assert.Equal(t, nil, value)
	}
	assert.NotEqual(t, "", w.Header().Get(RequestIDHeader))
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", &analysis.ValidationError{Message: "bad input"}, http.StatusBadRequest, "bad input"},
		{"extraction", &analysis.ExtractionError{URL: "https://x.test", Err: errors.New("status 403")}, http.StatusInternalServerError, "failed to extract text from URL: status 403"},
		{"upstream", &analysis.UpstreamError{Op: "analyze article", Err: errors.New("quota exceeded")}, http.StatusInternalServerError, "failed to analyze article: quota exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeStore{}, &fakeAnalyzer{err: tt.err}, &fakeComparer{})

			w := doRequest(r, "POST", "/api/analyze", `{"url": "https://x.test"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(w))
		})
	}
}

func TestAnalyze_StoreFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &model.NewArticle{Title: "T", Content: "C"}}
	r := newTestRouter(&fakeStore{err: errors.New("db down")}, analyzer, &fakeComparer{})

	w := doRequest(r, "POST", "/api/analyze", `{"text": "some text"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetLatest_NotFound(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, &fakeComparer{})

	w := doRequest(r, "GET", "/api/articles/latest", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No articles found", errorMessage(w))
}

func TestGetRecent_EmptyIsArray(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, &fakeComparer{})

	w := doRequest(r, "GET", "/api/articles/recent", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetHistory_QueryParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantSource string
	}{
		{"defaults", "", 1, 10, ""},
		{"explicit", "?page=3&limit=20&source=CNN", 3, 20, "CNN"},
		{"all means no filter", "?source=all", 1, 10, ""},
		{"invalid values use defaults", "?page=zero&limit=-4", 1, 10, ""},
		{"limit clamped", "?limit=500", 1, 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			r := newTestRouter(store, &fakeAnalyzer{}, &fakeComparer{})

			w := doRequest(r, "GET", "/api/articles/history"+tt.query, "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantPage, store.historyPage)
			assert.Equal(t, tt.wantLimit, store.historyLimit)
			assert.Equal(t, tt.wantSource, store.historySource)
		})
	}
}

func TestGetCount(t *testing.T) {
	store := &fakeStore{count: 7}
	r := newTestRouter(store, &fakeAnalyzer{}, &fakeComparer{})

	w := doRequest(r, "GET", "/api/articles/count?source=all&search=budget", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())
	assert.Equal(t, "", store.countSource)
	assert.Equal(t, "budget", store.countSearch)
}

func TestGetArticle(t *testing.T) {
	a := model.BuildArticle(9, model.NewArticle{Title: "T", Content: "C"}, time.Now())

	r := newTestRouter(&fakeStore{article: &a}, &fakeAnalyzer{}, &fakeComparer{})
	w := doRequest(r, "GET", "/api/articles/9", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "GET", "/api/articles/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newTestRouter(&fakeStore{}, &fakeAnalyzer{}, &fakeComparer{})
	w = doRequest(r, "GET", "/api/articles/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakeAnalyzer{}, &fakeComparer{})
	w := doRequest(r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	r = newTestRouter(&fakeStore{err: errors.New("db down")}, &fakeAnalyzer{}, &fakeComparer{})
	w = doRequest(r, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestArticleFlow_WithMemStorage(t *testing.T) {
	store := repository.NewMemStorage()
	analyzer := &fakeAnalyzer{result: &model.NewArticle{Title: "First", Source: "CNN", Content: "C", BiasScore: 70}}
	r := newTestRouter(store, analyzer, &fakeComparer{})

	doRequest(r, "POST", "/api/analyze", `{"text": "first"}`)
	analyzer.result = &model.NewArticle{Title: "Second", Source: "BBC", Content: "C", BiasScore: 50}
	doRequest(r, "POST", "/api/analyze", `{"text": "second"}`)

	w := doRequest(r, "GET", "/api/articles/latest", "")
	var latest model.Article
	json.Unmarshal(w.Body.Bytes(), &latest)
	assert.Equal(t, "Second", latest.Title)
	assert.Equal(t, int64(2), latest.ID)

	w = doRequest(r, "GET", "/api/articles/history?source=cnn", "")
	var history []model.Article
	json.Unmarshal(w.Body.Bytes(), &history)
	assert.Equal(t, 1, len(history))
	assert.Equal(t, "First", history[0].Title)

	w = doRequest(r, "GET", "/api/articles/count?search=sec", "")
	assert.Equal(t, "1", w.Body.String())
}

func TestGetHistory_HugePageIsEmpty(t *testing.T) {
	store := repository.NewMemStorage()
	store.CreateArticle(model.NewArticle{Title: "One", Content: "C", BiasScore: 50})
	store.CreateArticle(model.NewArticle{Title: "Two", Content: "C", BiasScore: 50})
	r := newTestRouter(store, &fakeAnalyzer{}, &fakeComparer{})

	w := doRequest(r, "GET", "/api/articles/history?page=4611686018427387905&limit=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
