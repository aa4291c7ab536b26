package repository

import (
	"sort"
	"strings"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

// Storage is the contract every backend honours. Lookups that find nothing
// return a nil record and a nil error.
type Storage interface {
	CreateArticle(article model.NewArticle) (*model.Article, error)
	GetArticle(id int64) (*model.Article, error)
	GetLatestArticle() (*model.Article, error)
	GetRecentArticles(limit int) ([]model.Article, error)
	GetArticleHistory(page, limit int, source string) ([]model.Article, error)
	GetArticleCount(source, searchTerm string) (int, error)

	CreateUser(user model.NewUser) (*model.User, error)
	GetUser(id int64) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
}

// sortNewestFirst orders by analyzedAt descending; equal timestamps keep the
// later insert first.
func sortNewestFirst(articles []model.Article) {
	sort.Slice(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if !a.AnalyzedAt.Equal(b.AnalyzedAt) {
			return a.AnalyzedAt.After(b.AnalyzedAt)
		}
		return a.ID > b.ID
	})
}

func matchesSource(a model.Article, source string) bool {
	if source == "" {
		return true
	}
	return a.Source != nil && strings.EqualFold(*a.Source, source)
}

func matchesSearch(a model.Article, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(a.Title), term) {
		return true
	}
	return a.Source != nil && strings.Contains(strings.ToLower(*a.Source), term)
}

// pageBounds returns the half-open slice range for a 1-indexed page, clipped
// to n. ok is false when the page lies outside the data.
func pageBounds(page, limit, n int) (start, end int, ok bool) {
	if page < 1 || limit < 1 || n < 1 {
		return 0, 0, false
	}
	// Compared by division so huge pages cannot overflow the offset.
	if page-1 > (n-1)/limit {
		return 0, 0, false
	}
	start = (page - 1) * limit
	end = start + min(limit, n-start)
	return start, end, true
}
