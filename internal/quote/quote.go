// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quote detects reported speech in parsed news text: it turns
// pattern matches into quotes with a proposition span and authors, finds
// unmarked continuation paragraphs, resolves partial author names within
// an article, and flattens the result into records.
package quote

import (
	"strings"

	"github.com/pdiddy/quote-detection/internal/corpus"
)

// Span is an inclusive token range.
type Span struct {
	Start int
	End   int
}

// Contains reports whether token i lies in the span.
func (s Span) Contains(i int) bool { return s.Start <= i && i <= s.End }

// Author is a speaker name as a list of tokens. Quotes share *Author
// values: a continuation quote holds the same pointers as the quote it
// continues, so resolving one resolves both.
type Author struct {
	// Head is the token the author phrase was anchored on, before any
	// redirection to a possessor or appositive name.
	Head int

	// Tokens is the name, in order. Resolution rewrites it.
	Tokens []int
}

// Render joins the lemmas of the author's tokens with spaces.
func (a *Author) Render(doc *corpus.Document) string {
	return renderLemmas(doc, a.Tokens)
}

// Quote is one extracted utterance.
type Quote struct {
	Span    Span
	Authors []*Author
	Direct  bool

	// Cue is the triggering token, or -1 for continuation quotes.
	Cue       int
	PatternID string
}

// IsContinuation reports whether the quote was found without a cue.
func (q *Quote) IsContinuation() bool { return q.Cue < 0 }

// Name is a full proper-name mention used to resolve shorter author names.
type Name struct {
	// Index is the position of the name's head token.
	Index  int
	Tokens []int
}

func renderLemmas(doc *corpus.Document, tokens []int) string {
	lemmas := make([]string, len(tokens))
	for i, t := range tokens {
		lemmas[i] = doc.Token(t).Lemma
	}
	return strings.Join(lemmas, " ")
}
