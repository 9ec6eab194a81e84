// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/match"
	"github.com/pdiddy/quote-detection/internal/rules"
	"github.com/pdiddy/quote-detection/pkg/types"
)

// Options configures a Detector.
type Options struct {
	// Resolve enables author resolution.
	Resolve bool

	// Logger receives per-candidate warnings. Nil discards them.
	Logger *slog.Logger
}

// Detector turns pattern matches over one document into quote records.
// It holds only read-only state and is safe for concurrent use.
type Detector struct {
	matcher *match.Matcher
	lexicon *rules.Lexicon
	resolve bool
	logger  *slog.Logger
}

// NewDetector creates a Detector for the given rules.
func NewDetector(r *rules.Rules, opts Options) *Detector {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Detector{
		matcher: match.New(r.Patterns),
		lexicon: r.Lexicon,
		resolve: opts.Resolve,
		logger:  logger,
	}
}

// DocStats counts what happened to one document's candidates.
type DocStats struct {
	Matches       int
	Quotes        int
	Continuations int
	Names         int
	Skipped       int
}

// Add accumulates another document's counters.
func (s *DocStats) Add(o DocStats) {
	s.Matches += o.Matches
	s.Quotes += o.Quotes
	s.Continuations += o.Continuations
	s.Names += o.Names
	s.Skipped += o.Skipped
}

// Result is the outcome of detecting quotes in one document.
type Result struct {
	ArticleID string
	Records   []types.QuoteRecord
	Stats     DocStats
}

type triple struct{ cue, author, prop int }

// Detect runs extraction, continuation detection, resolution and assembly
// for one document. Failing candidates are logged and skipped.
func (d *Detector) Detect(doc *corpus.Document) Result {
	res := Result{ArticleID: doc.ArticleID}
	quotes, names := d.Extract(doc, &res.Stats)

	conts := FindContinuations(doc, quotes)
	res.Stats.Continuations = len(conts)

	all := append(quotes, conts...)
	SortQuotes(all)
	if d.resolve {
		NewResolution(d.lexicon).Resolve(doc, all, names)
	}
	res.Records = Records(doc, all)
	return res
}

// Extract dispatches the document's matches by pattern family and returns
// the directly matched quotes and the name mentions, both in match order.
func (d *Detector) Extract(doc *corpus.Document, stats *DocStats) ([]*Quote, []Name) {
	var (
		quotes    []*Quote
		names     []Name
		seen      = make(map[triple]bool)
		seenNames = make(map[int]bool)
	)

	for _, m := range d.matcher.Find(doc) {
		stats.Matches++
		p := m.Pattern
		switch p.Family.Kind {
		case rules.QuotePattern:
			key := triple{m.Token(rules.SlotCue), m.Token(rules.SlotAuthor), m.Token(rules.SlotProposition)}
			if seen[key] {
				continue
			}
			seen[key] = true

			q, err := d.buildQuote(doc, p, key)
			if err != nil {
				d.warn(doc, p.ID, key.cue, err)
				stats.Skipped++
				continue
			}
			quotes = append(quotes, q)
			stats.Quotes++

		case rules.NamePattern:
			head := m.Token(rules.SlotName)
			if seenNames[head] {
				continue
			}
			seenNames[head] = true
			names = append(names, Name{Index: head, Tokens: flattenName(doc, head)})
			stats.Names++

		case rules.ActorPattern:
			// Handled by the actor extraction stage.

		default:
			d.warn(doc, p.ID, m.Tokens[0], fmt.Errorf("%w: %q", rules.ErrUnrecognizedPatternFamily, p.ID))
			stats.Skipped++
		}
	}
	return quotes, names
}

func (d *Detector) buildQuote(doc *corpus.Document, p *rules.Pattern, t triple) (*Quote, error) {
	span, direct, err := ExtractProposition(doc, t.cue, t.prop, p.Family.Style)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Span:      span,
		Authors:   ExtractAuthors(doc, t.author, d.lexicon),
		Direct:    direct,
		Cue:       t.cue,
		PatternID: p.ID,
	}, nil
}

func (d *Detector) warn(doc *corpus.Document, pattern string, at int, err error) {
	d.logger.Warn("skipping candidate",
		"articleId", doc.ArticleID,
		"pattern", pattern,
		"sentenceId", doc.Token(at).SentenceID,
		"error", err)
}

// Summary aggregates counters over a run.
type Summary struct {
	Documents int
	Dropped   int
	DocStats
}

// Total returns the number of records emitted.
func (s Summary) Total() int { return s.Quotes + s.Continuations }

// HasFailures reports whether any document or candidate was skipped.
func (s Summary) HasFailures() bool { return s.Dropped > 0 || s.Skipped > 0 }

// String formats the summary the way stage progress lines are printed.
func (s Summary) String() string {
	return fmt.Sprintf("documents: %d, dropped: %d, quotes: %d, continuations: %d, skipped: %d",
		s.Documents, s.Dropped, s.Quotes, s.Continuations, s.Skipped)
}
