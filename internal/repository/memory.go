package repository

import (
	"sync"
	"time"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

// MemStorage keeps everything in process memory. Every query is a full scan,
// which is fine for the volumes a single process sees.
type MemStorage struct {
	mu            sync.RWMutex
	articles      map[int64]model.Article
	users         map[int64]model.User
	nextArticleID int64
	nextUserID    int64
	now           func() time.Time
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		articles:      make(map[int64]model.Article),
		users:         make(map[int64]model.User),
		nextArticleID: 1,
		nextUserID:    1,
		now:           time.Now,
	}
}

func (s *MemStorage) CreateArticle(in model.NewArticle) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextArticleID
	s.nextArticleID++

	article := model.BuildArticle(id, in, s.now())
	s.articles[id] = article

	return &article, nil
}

func (s *MemStorage) GetArticle(id int64) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemStorage) GetLatestArticle() (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *model.Article
	for _, a := range s.articles {
		if latest == nil || a.AnalyzedAt.After(latest.AnalyzedAt) ||
			(a.AnalyzedAt.Equal(latest.AnalyzedAt) && a.ID > latest.ID) {
			a := a
			latest = &a
		}
	}
	return latest, nil
}

func (s *MemStorage) GetRecentArticles(limit int) ([]model.Article, error) {
	articles := s.snapshot(func(model.Article) bool { return true })
	if limit < 0 {
		limit = 0
	}
	if limit < len(articles) {
		articles = articles[:limit]
	}
	return articles, nil
}

func (s *MemStorage) GetArticleHistory(page, limit int, source string) ([]model.Article, error) {
	articles := s.snapshot(func(a model.Article) bool { return matchesSource(a, source) })

	start, end, ok := pageBounds(page, limit, len(articles))
	if !ok {
		return []model.Article{}, nil
	}
	return articles[start:end], nil
}

func (s *MemStorage) GetArticleCount(source, searchTerm string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, a := range s.articles {
		if matchesSource(a, source) && matchesSearch(a, searchTerm) {
			count++
		}
	}
	return count, nil
}

func (s *MemStorage) CreateUser(in model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{ID: s.nextUserID, Username: in.Username, Password: in.Password}
	s.nextUserID++
	s.users[u.ID] = u

	return &u, nil
}

func (s *MemStorage) GetUser(id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemStorage) GetUserByUsername(username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// snapshot copies the matching records out of the map, newest first.
func (s *MemStorage) snapshot(keep func(model.Article) bool) []model.Article {
	s.mu.RLock()
	articles := make([]model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if keep(a) {
			articles = append(articles, a)
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(articles)
	return articles
}
