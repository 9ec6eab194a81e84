// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package actor extracts people mentioned with a role and an organisation,
// such as "Nokian toimitusjohtaja Pekka Lundmark", from parsed news text.
package actor

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/match"
	"github.com/pdiddy/quote-detection/internal/rules"
	"github.com/pdiddy/quote-detection/pkg/types"
)

// Extractor turns actor-pattern matches into actor records. It is safe for
// concurrent use.
type Extractor struct {
	matcher *match.Matcher
	logger  *slog.Logger
}

// NewExtractor creates an Extractor for the given rules. A nil logger
// discards warnings.
func NewExtractor(r *rules.Rules, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{matcher: match.New(r.Patterns), logger: logger}
}

// Result is the outcome of actor extraction for one document.
type Result struct {
	ArticleID string
	Records   []types.ActorRecord
	Skipped   int
}

// Extract returns one record per distinct actor match, in match order.
func (e *Extractor) Extract(doc *corpus.Document) Result {
	res := Result{ArticleID: doc.ArticleID}
	seen := make(map[types.ActorRecord]bool)

	for _, m := range e.matcher.Find(doc) {
		if m.Pattern.Family.Kind != rules.ActorPattern {
			if m.Pattern.Family.Kind == rules.UnknownPattern {
				e.logger.Warn("skipping match",
					"articleId", doc.ArticleID,
					"pattern", m.Pattern.ID,
					"sentenceId", doc.Token(m.Tokens[0]).SentenceID,
					"error", fmt.Errorf("%w: %q", rules.ErrUnrecognizedPatternFamily, m.Pattern.ID))
				res.Skipped++
			}
			continue
		}

		name := doc.Token(m.Token(rules.SlotName))
		rec := types.ActorRecord{
			ArticleID:    doc.ArticleID,
			SentenceID:   name.SentenceID,
			WordID:       name.WordID,
			Name:         Name(doc, name.Index),
			Organisation: Organisation(doc, m.Token(rules.SlotOrganisation)),
			Role:         doc.Token(m.Token(rules.SlotRole)).Lemma,
		}
		if seen[rec] {
			continue
		}
		seen[rec] = true
		res.Records = append(res.Records, rec)
	}
	return res
}

// Name renders a name token and its flat:name continuations as lemmas.
func Name(doc *corpus.Document, t int) string {
	var parts []string
	var walk func(int)
	walk = func(i int) {
		parts = append(parts, doc.Token(i).Lemma)
		for _, c := range doc.Children(i) {
			if doc.Token(c).Dep == "flat:name" {
				walk(c)
			}
		}
	}
	walk(t)
	return strings.Join(parts, " ")
}

// Organisation renders an organisation token as the surface words of its
// possessive modifiers followed by its own lemma: "Nokian hallitus". With
// several possessives the last one comes first.
func Organisation(doc *corpus.Document, t int) string {
	var parts []string
	children := doc.Children(t)
	for j := len(children) - 1; j >= 0; j-- {
		c := children[j]
		if doc.Token(c).Dep != "nmod:poss" {
			continue
		}
		for _, i := range doc.Subtree(c) {
			parts = append(parts, doc.Token(i).Word)
		}
	}
	parts = append(parts, doc.Token(t).Lemma)
	return strings.Join(parts, " ")
}
