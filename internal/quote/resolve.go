// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"sort"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/rules"
)

// Resolution holds the state of one author-resolution pass over one
// document. It must not be reused across documents.
type Resolution struct {
	lexicon *rules.Lexicon

	// names maps the lemma of a name's last token to the fullest name
	// seen so far under that key.
	names map[string][]int

	// pronoun is the most recent name or resolved author.
	pronoun []int
}

// NewResolution returns an empty resolution context.
func NewResolution(lex *rules.Lexicon) *Resolution {
	return &Resolution{lexicon: lex, names: make(map[string][]int)}
}

type eventKind int

const (
	nameEvent eventKind = iota
	quoteEvent
)

type event struct {
	pos   int
	kind  eventKind
	name  Name
	quote *Quote
}

// Resolve rewrites author token lists in place, left to right. Names are
// registered as they are met; each author whose rendering matches a
// registered last-name lemma, or the pronoun, takes the stored name. A
// name at the same position as a quote start is seen first. An author
// shared by several quotes is resolved at the first of them only.
func (r *Resolution) Resolve(doc *corpus.Document, quotes []*Quote, names []Name) {
	events := make([]event, 0, len(quotes)+len(names))
	for _, n := range names {
		events = append(events, event{pos: n.Index, kind: nameEvent, name: n})
	}
	for _, q := range quotes {
		events = append(events, event{pos: q.Span.Start, kind: quoteEvent, quote: q})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].pos != events[j].pos {
			return events[i].pos < events[j].pos
		}
		return events[i].kind < events[j].kind
	})

	visited := make(map[*Author]bool)
	for _, e := range events {
		switch e.kind {
		case nameEvent:
			r.register(doc, e.name)
		case quoteEvent:
			for _, a := range e.quote.Authors {
				if visited[a] {
					continue
				}
				visited[a] = true
				r.resolve(doc, a)
			}
		}
	}
}

func (r *Resolution) register(doc *corpus.Document, n Name) {
	if len(n.Tokens) == 0 {
		return
	}
	last := doc.Token(n.Tokens[len(n.Tokens)-1]).Lemma
	r.names[last] = n.Tokens
	r.pronoun = n.Tokens
}

func (r *Resolution) resolve(doc *corpus.Document, a *Author) {
	rendered := a.Render(doc)

	var target []int
	if r.lexicon != nil && r.lexicon.IsPronoun(rendered) {
		target = r.pronoun
	} else {
		target = r.names[rendered]
	}
	if len(target) == 0 {
		return
	}
	a.Tokens = append([]int(nil), target...)
	r.pronoun = a.Tokens
}
