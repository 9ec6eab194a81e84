// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"sort"
	"strconv"

	"github.com/pdiddy/quote-detection/internal/corpus"
)

// FindContinuations returns the unmarked paragraphs that continue the
// given quotes. The input set is frozen: continuations never chain off
// each other. Predecessors are tried in ascending span-start order and a
// paragraph is claimed by at most one of them.
func FindContinuations(doc *corpus.Document, quotes []*Quote) []*Quote {
	claimed := make(map[int]bool)
	for _, q := range quotes {
		for i := q.Span.Start; i <= q.Span.End; i++ {
			claimed[i] = true
		}
	}

	ordered := make([]*Quote, len(quotes))
	copy(ordered, quotes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Span.Start < ordered[j].Span.Start
	})

	taken := make(map[int]bool)
	var out []*Quote
	for _, q := range ordered {
		next, ok := nextParagraph(doc, q.Span.End)
		if !ok || taken[next.Start] {
			continue
		}
		if !adjacentSentences(doc.Token(q.Span.End), doc.Token(next.Start)) {
			continue
		}
		if overlaps(next, claimed) {
			continue
		}
		if !marksContinuation(doc, next) {
			continue
		}
		taken[next.Start] = true
		out = append(out, &Quote{
			Span:      next,
			Authors:   q.Authors,
			Direct:    true,
			Cue:       -1,
			PatternID: q.PatternID,
		})
	}
	return out
}

// nextParagraph returns the paragraph numbered one past the paragraph
// holding token last, provided it immediately follows it.
func nextParagraph(doc *corpus.Document, last int) (Span, bool) {
	par := doc.Token(last).ParagraphID
	p, err := strconv.Atoi(par)
	if err != nil {
		return Span{}, false
	}

	i := last + 1
	for i < doc.Len() && doc.Token(i).ParagraphID == par {
		i++
	}
	if i >= doc.Len() {
		return Span{}, false
	}
	next := doc.Token(i).ParagraphID
	if n, err := strconv.Atoi(next); err != nil || n != p+1 {
		return Span{}, false
	}

	j := i
	for j+1 < doc.Len() && doc.Token(j+1).ParagraphID == next {
		j++
	}
	return Span{Start: i, End: j}, true
}

func adjacentSentences(last, first *corpus.Token) bool {
	a, err := strconv.Atoi(last.SentenceID)
	if err != nil {
		return false
	}
	b, err := strconv.Atoi(first.SentenceID)
	if err != nil {
		return false
	}
	return b == a+1
}

func overlaps(s Span, claimed map[int]bool) bool {
	for i := s.Start; i <= s.End; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// marksContinuation reports whether the paragraph opens with a hyphen or
// is wrapped in quotation marks.
func marksContinuation(doc *corpus.Document, s Span) bool {
	first, last := doc.Token(s.Start), doc.Token(s.End)
	if first.IsHyphen() {
		return true
	}
	return first.IsQuotationMark() && last.IsQuotationMark()
}
