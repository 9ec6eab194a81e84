// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/quote-detection/pkg/types"
)

// QueryOptions holds parameters for quote queries.
type QueryOptions struct {
	// Query is an FTS5 query over quote text and author.
	Query string

	// ArticleID restricts results to one article.
	ArticleID string

	// Author matches a substring of the author field.
	Author string

	// Direct, when set, keeps only direct or only indirect quotes.
	Direct *bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.ArticleID == "" && q.Author == "" && q.Direct == nil
}

// QueryResult is a stored quote with the run that produced it.
type QueryResult struct {
	types.QuoteRecord `yaml:",inline"`
	RunID             string `json:"run_id" yaml:"run_id"`
}

// Retrieve queries stored quotes. Full-text queries are ranked by
// relevance; filter-only queries are ordered by article and position.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	const columns = `q.article_id, q.start_sentence_id, q.start_word_id,
		q.end_sentence_id, q.end_word_id, q.author, q.author_head, q.direct,
		q.text, q.run_id`

	if useFTS {
		qb.WriteString(`SELECT ` + columns + `
			FROM quotes_fts
			JOIN quotes q ON q.rowid = quotes_fts.rowid
			WHERE quotes_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(`SELECT ` + columns + `
			FROM quotes q
			WHERE 1=1`)
	}

	if opts.ArticleID != "" {
		qb.WriteString(` AND q.article_id = ?`)
		args = append(args, opts.ArticleID)
	}
	if opts.Author != "" {
		qb.WriteString(` AND q.author LIKE ?`)
		args = append(args, "%"+opts.Author+"%")
	}
	if opts.Direct != nil {
		qb.WriteString(` AND q.direct = ?`)
		args = append(args, *opts.Direct)
	}

	if useFTS {
		qb.WriteString(` ORDER BY quotes_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY q.article_id, q.seq`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr   QueryResult
			text sql.NullString
		)
		if err := rows.Scan(
			&qr.ArticleID, &qr.StartSentenceID, &qr.StartWordID,
			&qr.EndSentenceID, &qr.EndWordID, &qr.Author, &qr.AuthorHead, &qr.Direct,
			&text, &qr.RunID,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Text = text.String
		results = append(results, qr)
	}

	return results, rows.Err()
}
