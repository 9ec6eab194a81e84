// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists detected quotes in a SQLite database with a
// full-text index over quote text and authors.
//
// Full-text search needs go-sqlite3 built with the sqlite_fts5 tag.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quote-detection/pkg/types"
)

// DefaultDatabase is used when no database path is configured.
const DefaultDatabase = "quotes.db"

// Store manages the quote database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// Open opens or creates the database at cfg.Database and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Database
	if path == "" {
		path = DefaultDatabase
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, path: path, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			input_file TEXT,
			rules_file TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS quotes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			article_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			start_sentence_id TEXT NOT NULL,
			start_word_id TEXT NOT NULL,
			end_sentence_id TEXT NOT NULL,
			end_word_id TEXT NOT NULL,
			author TEXT NOT NULL,
			author_head TEXT NOT NULL,
			direct INTEGER NOT NULL,
			text TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_article_id ON quotes(article_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_run_id ON quotes(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='quotes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE quotes_fts USING fts5(text, author, content=quotes, content_rowid=rowid)`,
			`CREATE TRIGGER quotes_ai AFTER INSERT ON quotes BEGIN
				INSERT INTO quotes_fts(rowid, text, author) VALUES (new.rowid, new.text, new.author);
			END`,
			`CREATE TRIGGER quotes_ad AFTER DELETE ON quotes BEGIN
				INSERT INTO quotes_fts(quotes_fts, rowid, text, author) VALUES('delete', old.rowid, old.text, old.author);
			END`,
			`CREATE TRIGGER quotes_au AFTER UPDATE ON quotes BEGIN
				INSERT INTO quotes_fts(quotes_fts, rowid, text, author) VALUES('delete', old.rowid, old.text, old.author);
				INSERT INTO quotes_fts(rowid, text, author) VALUES (new.rowid, new.text, new.author);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Run describes one detection run recorded in the store.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	InputFile string    `json:"input_file" yaml:"input_file"`
	RulesFile string    `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
	Quotes    int       `json:"quotes" yaml:"quotes"`
}

// BeginRun records a new run and returns its id.
func (s *Store) BeginRun(ctx context.Context, inputFile, rulesFile string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input_file, rules_file) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), inputFile, rulesFile,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// SaveArticle replaces all stored quotes of an article with records,
// attributing them to runID. It runs in one transaction.
func (s *Store) SaveArticle(ctx context.Context, runID, articleID string, records []types.QuoteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM quotes WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("deleting old quotes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO quotes (run_id, article_id, seq, start_sentence_id, start_word_id,
			end_sentence_id, end_word_id, author, author_head, direct, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			runID, articleID, i,
			r.StartSentenceID, r.StartWordID, r.EndSentenceID, r.EndWordID,
			r.Author, r.AuthorHead, r.Direct, r.Text,
		)
		if err != nil {
			return fmt.Errorf("inserting quote %d of article %s: %w", i, articleID, err)
		}
	}

	return tx.Commit()
}

// Runs lists recorded runs, newest first, with their current quote counts.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.started_at, r.input_file, r.rules_file,
			(SELECT count(*) FROM quotes q WHERE q.run_id = r.id)
		FROM runs r ORDER BY r.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt string
			input     sql.NullString
			rulesFile sql.NullString
		)
		if err := rows.Scan(&r.ID, &startedAt, &input, &rulesFile, &r.Quotes); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		r.InputFile = input.String
		r.RulesFile = rulesFile.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
