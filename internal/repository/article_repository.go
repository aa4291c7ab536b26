package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

const articleColumns = `id, title, source, url, content, bias_score, bias_label, bias_analysis,
	neutral_text, biased_phrases, political_leaning, emotional_language, factual_reporting,
	topics, multidimensional_analysis, analyzed_at`

type ArticleRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db, now: time.Now}
}

func (r *ArticleRepository) CreateArticle(in model.NewArticle) (*model.Article, error) {
	a := model.BuildArticle(0, in, r.now().UTC())

	phrases, err := jsonColumn(a.BiasedPhrases != nil, a.BiasedPhrases)
	if err != nil {
		return nil, fmt.Errorf("encode biased phrases: %w", err)
	}
	topics, err := jsonColumn(a.Topics != nil, a.Topics)
	if err != nil {
		return nil, fmt.Errorf("encode topics: %w", err)
	}
	dims, err := jsonColumn(a.MultidimensionalAnalysis != nil, a.MultidimensionalAnalysis)
	if err != nil {
		return nil, fmt.Errorf("encode multidimensional analysis: %w", err)
	}

	err = r.db.QueryRow(`
		INSERT INTO articles(title, source, url, content, bias_score, bias_label, bias_analysis,
			neutral_text, biased_phrases, political_leaning, emotional_language, factual_reporting,
			topics, multidimensional_analysis, analyzed_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, a.Title, a.Source, a.URL, a.Content, a.BiasScore, a.BiasLabel, a.BiasAnalysis,
		a.NeutralText, phrases, a.PoliticalLeaning, a.EmotionalLanguage, a.FactualReporting,
		topics, dims, a.AnalyzedAt).Scan(&a.ID)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *ArticleRepository) GetArticle(id int64) (*model.Article, error) {
	row := r.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) GetLatestArticle() (*model.Article, error) {
	row := r.db.QueryRow(`
		SELECT ` + articleColumns + `
		FROM articles
		ORDER BY analyzed_at DESC, id DESC
		LIMIT 1
	`)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) GetRecentArticles(limit int) ([]model.Article, error) {
	if limit < 1 {
		return []model.Article{}, nil
	}

	rows, err := r.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY analyzed_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

func (r *ArticleRepository) GetArticleHistory(page, limit int, source string) ([]model.Article, error) {
	if page < 1 || limit < 1 || page-1 > math.MaxInt/limit {
		return []model.Article{}, nil
	}

	rows, err := r.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE ($1 = '' OR LOWER(source) = LOWER($1))
		ORDER BY analyzed_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, source, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

func (r *ArticleRepository) GetArticleCount(source, searchTerm string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM articles
		WHERE ($1 = '' OR LOWER(source) = LOWER($1))
		AND ($2 = ''
			OR STRPOS(LOWER(title), LOWER($2)) > 0
			OR STRPOS(LOWER(COALESCE(source, '')), LOWER($2)) > 0)
	`, source, searchTerm).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var (
		a                                       model.Article
		source, url, analysis, neutral          sql.NullString
		leaning, emotional, factual             sql.NullString
		phrasesJSON, topicsJSON, dimensionsJSON []byte
	)

	err := row.Scan(&a.ID, &a.Title, &source, &url, &a.Content, &a.BiasScore, &a.BiasLabel, &analysis,
		&neutral, &phrasesJSON, &leaning, &emotional, &factual,
		&topicsJSON, &dimensionsJSON, &a.AnalyzedAt)
	if err != nil {
		return nil, err
	}

	a.Source = nullableString(source)
	a.URL = nullableString(url)
	a.BiasAnalysis = nullableString(analysis)
	a.NeutralText = nullableString(neutral)
	a.PoliticalLeaning = nullableString(leaning)
	a.EmotionalLanguage = nullableString(emotional)
	a.FactualReporting = nullableString(factual)

	if phrasesJSON != nil {
		if err := json.Unmarshal(phrasesJSON, &a.BiasedPhrases); err != nil {
			return nil, fmt.Errorf("decode biased phrases: %w", err)
		}
	}
	if topicsJSON != nil {
		if err := json.Unmarshal(topicsJSON, &a.Topics); err != nil {
			return nil, fmt.Errorf("decode topics: %w", err)
		}
	}
	if dimensionsJSON != nil {
		if err := json.Unmarshal(dimensionsJSON, &a.MultidimensionalAnalysis); err != nil {
			return nil, fmt.Errorf("decode multidimensional analysis: %w", err)
		}
	}

	return &a, nil
}

func collectArticles(rows *sql.Rows) ([]model.Article, error) {
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// jsonColumn encodes v for a JSONB column, or SQL NULL when present is false.
func jsonColumn(present bool, v any) (any, error) {
	if !present {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
