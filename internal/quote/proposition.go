// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"errors"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/rules"
)

// ErrEmptyProposition is returned when a candidate yields no proposition
// tokens. The candidate is dropped; the document is not.
var ErrEmptyProposition = errors.New("no proposition extracted")

// ExtractProposition computes the proposition span of a cue/proposition
// pair and whether it is a direct quote.
//
// The span covers the proposition head's subtree without the cue's
// subtree and punctuation, except when the proposition is a direct
// complement of the cue, in which case the whole subtree is kept.
// Paragraph-initial patterns extend the span to a hyphen opening the
// paragraph. A quotation mark between cue and proposition head whose
// partner encloses the head overrides both.
func ExtractProposition(doc *corpus.Document, cue, propHead int, style rules.Style) (Span, bool, error) {
	complement := doc.Token(propHead).Head == cue

	span := Span{Start: -1, End: -1}
	for _, i := range doc.Subtree(propHead) {
		if !complement && (doc.InSubtree(cue, i) || doc.Token(i).IsPunct()) {
			continue
		}
		if span.Start < 0 || i < span.Start {
			span.Start = i
		}
		if i > span.End {
			span.End = i
		}
	}
	if span.Start < 0 {
		return Span{}, false, ErrEmptyProposition
	}
	direct := false

	if style == rules.StyleParagraphInitial {
		start := doc.ParagraphStart(propHead)
		if doc.Token(start).IsHyphen() {
			span.Start = min(span.Start, start)
			direct = true
		}
	}

	if q, q2, ok := enclosingQuotes(doc, cue, propHead); ok {
		span = Span{Start: min(q, q2), End: max(q, q2)}
		direct = true
	}

	return span, direct, nil
}

// enclosingQuotes looks for a quotation mark strictly between cue and
// propHead, then for its partner on the side away from the cue. It
// succeeds only if the pair strictly encloses propHead.
func enclosingQuotes(doc *corpus.Document, cue, propHead int) (int, int, bool) {
	q := -1
	for i := min(cue, propHead) + 1; i < max(cue, propHead); i++ {
		if doc.Token(i).IsQuotationMark() {
			q = i
			break
		}
	}
	if q < 0 {
		return 0, 0, false
	}

	dir := 1
	if propHead < cue {
		dir = -1
	}
	for j := q + dir; j >= 0 && j < doc.Len(); j += dir {
		if !doc.Token(j).IsQuotationMark() {
			continue
		}
		if min(q, j) < propHead && propHead < max(q, j) {
			return q, j, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}
