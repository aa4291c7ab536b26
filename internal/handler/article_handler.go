package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/analysis"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

const recentArticlesLimit = 5

type ArticleStore interface {
	CreateArticle(in model.NewArticle) (*model.Article, error)
	GetArticle(id int64) (*model.Article, error)
	GetLatestArticle() (*model.Article, error)
	GetRecentArticles(limit int) ([]model.Article, error)
	GetArticleHistory(page, limit int, source string) ([]model.Article, error)
	GetArticleCount(source, searchTerm string) (int, error)
}

type ArticleAnalyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*model.NewArticle, error)
}

type ArticleHandler struct {
	repository ArticleStore
	analyzer   ArticleAnalyzer
}

func NewArticleHandler(repository ArticleStore, analyzer ArticleAnalyzer) *ArticleHandler {
	return &ArticleHandler{repository: repository, analyzer: analyzer}
}

func (h *ArticleHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid analyze request body", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.URL) == "" && strings.TrimSpace(req.Text) == "" {
		respondError(c, http.StatusBadRequest, "Either URL or text must be provided")
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), analysis.Request{URL: req.URL, Text: req.Text})
	if err != nil {
		respondAnalysisError(c, "analyzing article", err)
		return
	}

	article, err := h.repository.CreateArticle(*result)
	if err != nil {
		slog.Error("error saving article", "error", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) GetLatest(c *gin.Context) {
	article, err := h.repository.GetLatestArticle()
	if err != nil {
		slog.Error("error fetching latest article", "error", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if article == nil {
		respondError(c, http.StatusNotFound, "No articles found")
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) GetRecent(c *gin.Context) {
	articles, err := h.repository.GetRecentArticles(recentArticlesLimit)
	if err != nil {
		slog.Error("error fetching recent articles", "error", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, nonNil(articles))
}

func (h *ArticleHandler) GetHistory(c *gin.Context) {
	page := getQueryPage(c)
	limit := getQueryLimit(c)
	source := getQuerySource(c)

	articles, err := h.repository.GetArticleHistory(page, limit, source)
	if err != nil {
		slog.Error("error fetching article history", "error", err, "page", page, "limit", limit, "source", source)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, nonNil(articles))
}

func (h *ArticleHandler) GetCount(c *gin.Context) {
	source := getQuerySource(c)
	search := strings.TrimSpace(c.Query("search"))

	count, err := h.repository.GetArticleCount(source, search)
	if err != nil {
		slog.Error("error fetching article count", "error", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, count)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")

	articleID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid article id", "id", id, "error", err)
		respondError(c, http.StatusBadRequest, "Invalid article id")
		return
	}

	article, err := h.repository.GetArticle(articleID)
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", articleID)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if article == nil {
		respondError(c, http.StatusNotFound, "Article not found")
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetArticleCount("", "")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"storage": "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"storage": "available",
	})
}

func nonNil(articles []model.Article) []model.Article {
	if articles == nil {
		return []model.Article{}
	}
	return articles
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramValue := c.Query(name)

	if paramValue == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramValue)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramValue, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryPage(c *gin.Context) int {
	page := getQueryInt("page", 1, c)
	if page < 1 {
		slog.Warn("invalid query parameter, using default", "param", "page", "value", page, "default", 1)
		return 1
	}
	return page
}

// getQuerySource reads the source filter. "all" and blank mean no filter.
func getQuerySource(c *gin.Context) string {
	source := strings.TrimSpace(c.Query("source"))
	if strings.EqualFold(source, "all") {
		return ""
	}
	return source
}
