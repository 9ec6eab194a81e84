// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/rules"
)

// Dependency relations the author extractor follows.
const (
	depPossessive    = "nmod:poss"
	depClausalSubj   = "nmod:gsubj"
	depAppositive    = "appos"
	depNameContinues = "flat:name"
	depConjunct      = "conj"
)

// ExtractAuthors returns the author anchored on head, followed by one
// author per coordinated conjunct of head in document order.
func ExtractAuthors(doc *corpus.Document, head int, lex *rules.Lexicon) []*Author {
	authors := []*Author{extractAuthor(doc, head, lex)}
	for _, c := range doc.Children(head) {
		if doc.Token(c).Dep == depConjunct {
			authors = append(authors, extractAuthor(doc, c, lex))
		}
	}
	return authors
}

func extractAuthor(doc *corpus.Document, head int, lex *rules.Lexicon) *Author {
	t := head

	// "Virtasen ehdotuksen mukaan": the speaker is the possessor of the message noun.
	if lex != nil && lex.IsMessageNoun(doc.Token(t).Lemma) {
		if c, ok := firstChild(doc, t, func(c *corpus.Token) bool {
			return c.Dep == depPossessive || c.Dep == depClausalSubj
		}); ok {
			t = c
		}
	}

	// "puheenjohtaja Antti Palola": take the name, not the title.
	if doc.Token(t).POS == "NOUN" {
		if c, ok := firstChild(doc, t, func(c *corpus.Token) bool {
			return c.POS == "PROPN" && c.Dep == depAppositive
		}); ok {
			t = c
		}
	}

	return &Author{Head: head, Tokens: flattenName(doc, t)}
}

func firstChild(doc *corpus.Document, t int, pred func(*corpus.Token) bool) (int, bool) {
	for _, c := range doc.Children(t) {
		if pred(doc.Token(c)) {
			return c, true
		}
	}
	return 0, false
}

// flattenName returns t followed by its name-continuation dependents,
// each expanded recursively.
func flattenName(doc *corpus.Document, t int) []int {
	out := []int{t}
	for _, c := range doc.Children(t) {
		if doc.Token(c).Dep == depNameContinues {
			out = append(out, flattenName(doc, c)...)
		}
	}
	return out
}
