// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// requiredColumns lists the CoNLL-CSV columns the reader needs.
var requiredColumns = []string{
	"articleId", "paragraphId", "sentenceId", "wordId",
	"word", "lemma", "upos", "head", "deprel",
}

// ReadStats counts what the reader kept and dropped.
type ReadStats struct {
	Documents int
	Dropped   int
	EmptyRows int
}

// Reader yields documents from a CoNLL-CSV stream. Consecutive rows with
// the same articleId form one document. Malformed documents are logged
// and skipped; they never stop the stream.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	log     *slog.Logger
	pending []string
	eof     bool
	stats   ReadStats
}

// NewReader reads the header row and checks for the required columns.
func NewReader(r io.Reader, logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	return &Reader{csv: cr, columns: columns, log: logger}, nil
}

// Stats returns the counters accumulated so far.
func (r *Reader) Stats() ReadStats { return r.stats }

// Next returns the next well-formed document, or io.EOF at the end.
func (r *Reader) Next() (*Document, error) {
	for {
		rows, err := r.nextGroup()
		if err != nil {
			return nil, err
		}
		articleID := r.field(rows[0], "articleId")
		doc, err := r.build(articleID, rows)
		if err != nil {
			if errors.Is(err, ErrMalformedDocument) {
				r.stats.Dropped++
				r.log.Warn("ignoring document", "articleId", articleID, "error", err)
				continue
			}
			return nil, err
		}
		r.stats.Documents++
		return doc, nil
	}
}

// nextGroup collects the rows of the next article.
func (r *Reader) nextGroup() ([][]string, error) {
	if r.pending == nil {
		if r.eof {
			return nil, io.EOF
		}
		row, err := r.csv.Read()
		if err == io.EOF {
			r.eof = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		r.pending = row
	}

	rows := [][]string{r.pending}
	articleID := r.field(r.pending, "articleId")
	r.pending = nil

	for {
		row, err := r.csv.Read()
		if err == io.EOF {
			r.eof = true
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if r.field(row, "articleId") != articleID {
			r.pending = row
			return rows, nil
		}
		rows = append(rows, row)
	}
}

func (r *Reader) field(row []string, name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// build turns the rows of one article into a Document. Heads in the
// input are sentence-local word ids with 0 for the root.
func (r *Reader) build(articleID string, rows [][]string) (*Document, error) {
	var (
		tokens   []Token
		heads    []string
		starts   []int
		prevSent string
	)

	for n, row := range rows {
		sentID := r.field(row, "sentenceId")
		if n == 0 || sentID != prevSent {
			starts = append(starts, len(tokens))
		}
		prevSent = sentID

		wordID := r.field(row, "wordId")
		if r.field(row, "word") == "" {
			r.stats.EmptyRows++
			r.log.Warn("ignoring empty token",
				"articleId", articleID, "sentenceId", sentID, "wordId", wordID)
			continue
		}

		idx := len(tokens)
		word := r.field(row, "word")
		tokens = append(tokens, Token{
			Index:       idx,
			Word:        word,
			Lemma:       r.field(row, "lemma"),
			POS:         r.field(row, "upos"),
			Feats:       r.field(row, "feats"),
			Dep:         r.field(row, "deprel"),
			Norm:        Normalize(word),
			ParagraphID: r.field(row, "paragraphId"),
			SentenceID:  sentID,
			WordID:      wordID,
			SpaceAfter:  !strings.Contains(r.field(row, "misc"), "SpaceAfter=No"),
		})
		heads = append(heads, r.field(row, "head"))
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens", ErrMalformedDocument)
	}

	// Resolve heads sentence by sentence.
	starts = append(starts, len(tokens))
	for s := 0; s+1 < len(starts); s++ {
		from, to := starts[s], starts[s+1]
		ids := make(map[string]int, to-from)
		for i := from; i < to; i++ {
			ids[tokens[i].WordID] = i
		}
		for i := from; i < to; i++ {
			h, err := strconv.Atoi(strings.TrimSpace(heads[i]))
			if err != nil {
				return nil, fmt.Errorf("%w: token %s has head %q", ErrMalformedDocument, tokens[i].Locator(), heads[i])
			}
			if h == 0 {
				tokens[i].Head = i
				continue
			}
			j, ok := ids[strconv.Itoa(h)]
			if !ok {
				return nil, fmt.Errorf("%w: token %s head %d not in sentence", ErrMalformedDocument, tokens[i].Locator(), h)
			}
			tokens[i].Head = j
		}
	}

	return NewDocument(articleID, tokens)
}
