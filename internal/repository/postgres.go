package repository

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	source TEXT,
	url TEXT,
	content TEXT NOT NULL,
	bias_score INTEGER NOT NULL,
	bias_label TEXT NOT NULL,
	bias_analysis TEXT,
	neutral_text TEXT,
	biased_phrases JSONB,
	political_leaning TEXT,
	emotional_language TEXT,
	factual_reporting TEXT,
	topics JSONB,
	multidimensional_analysis JSONB,
	analyzed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS articles_analyzed_at_idx ON articles (analyzed_at DESC, id DESC);
`

// PostgresStorage is the durable Storage backend.
type PostgresStorage struct {
	*ArticleRepository
	*UserRepository
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{
		ArticleRepository: NewArticleRepository(db),
		UserRepository:    NewUserRepository(db),
	}
}

// EnsureSchema creates the tables when they are missing.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
