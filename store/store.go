// Package store persists extracted articles and assembled documents in
// SQLite so repeated requests for the same URL and topic are served from
// cache instead of re-running extraction and generation.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"forumbot"
)

// Store is the durable result cache. Writes use insert-or-replace
// semantics, so concurrent writers for the same key converge to a single
// last-write-wins entry. Safe for concurrent use; the connection enables
// WAL journaling, foreign keys and a bounded busy timeout instead of
// failing immediately on lock contention.
type Store struct {
	db *sql.DB
}

// ArticleRecord is a cached extraction result, keyed by URL.
type ArticleRecord struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// PostRecord is a cached assembled document, keyed by (URL, topic).
type PostRecord struct {
	URL       string    `json:"url"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes cache contents.
type Stats struct {
	ArticleCount int
	PostCount    int
}

// Open opens (creating if needed) the cache database at the given path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?%s", path, url.Values{
		"_journal_mode": {"WAL"},
		"_busy_timeout": {"20000"},
		"_foreign_keys": {"on"},
	}.Encode())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extracted_articles (
		url TEXT PRIMARY KEY,
		title TEXT,
		text TEXT,
		extracted_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS generated_posts (
		url TEXT,
		topic TEXT,
		output TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (url, topic)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveArticle stores or overwrites the extracted article for a URL.
func (s *Store) SaveArticle(articleURL, title, text string) error {
	query := `
		INSERT OR REPLACE INTO extracted_articles (url, title, text, extracted_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, articleURL, title, text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// GetArticle retrieves a cached article, or nil when the URL is unknown.
func (s *Store) GetArticle(articleURL string) (*ArticleRecord, error) {
	query := `
		SELECT title, text, extracted_at
		FROM extracted_articles
		WHERE url = ?
	`

	var record ArticleRecord
	var extractedAt string
	err := s.db.QueryRow(query, articleURL).Scan(&record.Title, &record.Text, &extractedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query article: %w", err)
	}

	record.URL = articleURL
	record.ExtractedAt = parseTime(extractedAt)
	return &record, nil
}

// SavePost stores or overwrites the assembled document for a (URL, topic)
// key.
func (s *Store) SavePost(articleURL, topic string, doc *forumbot.Document) error {
	output, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO generated_posts (url, topic, output, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err = s.db.Exec(query, articleURL, topic, string(output), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save generated post: %w", err)
	}
	return nil
}

// GetPost retrieves a cached document, or nil when the key is unknown.
func (s *Store) GetPost(articleURL, topic string) (*forumbot.Document, error) {
	query := `
		SELECT output
		FROM generated_posts
		WHERE url = ? AND topic = ?
	`

	var output string
	err := s.db.QueryRow(query, articleURL, topic).Scan(&output)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query generated post: %w", err)
	}

	var doc forumbot.Document
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached document: %w", err)
	}
	return &doc, nil
}

// ListArticles returns all cached articles, most recent first.
func (s *Store) ListArticles() ([]ArticleRecord, error) {
	query := `
		SELECT url, title, text, extracted_at
		FROM extracted_articles
		ORDER BY extracted_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var records []ArticleRecord
	for rows.Next() {
		var record ArticleRecord
		var extractedAt string
		if err := rows.Scan(&record.URL, &record.Title, &record.Text, &extractedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		record.ExtractedAt = parseTime(extractedAt)
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListPosts returns the keys of all cached documents, most recent first.
func (s *Store) ListPosts() ([]PostRecord, error) {
	query := `
		SELECT url, topic, created_at
		FROM generated_posts
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated posts: %w", err)
	}
	defer rows.Close()

	var records []PostRecord
	for rows.Next() {
		var record PostRecord
		var createdAt string
		if err := rows.Scan(&record.URL, &record.Topic, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan generated post: %w", err)
		}
		record.CreatedAt = parseTime(createdAt)
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetStats counts cached articles and documents.
func (s *Store) GetStats() (*Stats, error) {
	var stats Stats
	if err := s.db.QueryRow("SELECT COUNT(*) FROM extracted_articles").Scan(&stats.ArticleCount); err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM generated_posts").Scan(&stats.PostCount); err != nil {
		return nil, fmt.Errorf("failed to count generated posts: %w", err)
	}
	return &stats, nil
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
