// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/rules"
)

var testLexicon = rules.NewLexicon(nil, []string{"hän"})

// resolutionDoc places "Maria Virtanen" at 3, "Pekka Korhonen" at 10,
// the surnames alone at 20 and 25, and pronouns at 15 and 41.
func resolutionDoc(t *testing.T) *corpus.Document {
	t.Helper()
	tks := filler(45)
	set := func(i int, word, pos string, head int, dep string) {
		tks[i] = tk{word: word, lemma: word, pos: pos, dep: dep, head: head, par: "1", sent: "1"}
	}
	set(3, "Maria", "PROPN", 3, "root")
	set(4, "Virtanen", "PROPN", 3, "flat:name")
	set(10, "Pekka", "PROPN", 10, "root")
	set(11, "Korhonen", "PROPN", 10, "flat:name")
	set(15, "hän", "PRON", 15, "root")
	set(20, "Virtanen", "PROPN", 20, "root")
	set(25, "Korhonen", "PROPN", 25, "root")
	set(41, "hän", "PRON", 41, "root")
	return build(t, tks)
}

func quoteAt(start, author int) *Quote {
	return &Quote{
		Span:    Span{start, start + 2},
		Authors: []*Author{{Head: author, Tokens: []int{author}}},
		Cue:     start + 3,
	}
}

var (
	maria = Name{Index: 3, Tokens: []int{3, 4}}
	pekka = Name{Index: 10, Tokens: []int{10, 11}}
)

func TestResolvePronoun(t *testing.T) {
	doc := resolutionDoc(t)
	q := quoteAt(40, 41)

	NewResolution(testLexicon).Resolve(doc, []*Quote{q}, []Name{maria})
	assert.Equal(t, []int{3, 4}, q.Authors[0].Tokens)
	assert.Equal(t, "Maria Virtanen", q.Authors[0].Render(doc))
}

func TestResolveSurname(t *testing.T) {
	doc := resolutionDoc(t)
	q := quoteAt(19, 20)

	NewResolution(testLexicon).Resolve(doc, []*Quote{q}, []Name{maria, pekka})
	assert.Equal(t, "Maria Virtanen", q.Authors[0].Render(doc))
}

func TestResolvePronounFollowsResolvedAuthor(t *testing.T) {
	doc := resolutionDoc(t)
	byName := quoteAt(19, 20)
	byPronoun := quoteAt(40, 41)

	NewResolution(testLexicon).Resolve(doc, []*Quote{byName, byPronoun}, []Name{maria, pekka})
	assert.Equal(t, "Maria Virtanen", byPronoun.Authors[0].Render(doc),
		"pronoun binds to the last resolved author, not the last name")
}

func TestResolveForwardOnly(t *testing.T) {
	doc := resolutionDoc(t)
	byPronoun := quoteAt(1, 15)
	bySurname := quoteAt(0, 20)
	late := Name{Index: 30, Tokens: []int{3, 4}}

	NewResolution(testLexicon).Resolve(doc, []*Quote{byPronoun, bySurname}, []Name{late})
	assert.Equal(t, []int{15}, byPronoun.Authors[0].Tokens)
	assert.Equal(t, []int{20}, bySurname.Authors[0].Tokens)
}

func TestResolveNameBeforeQuoteAtSameIndex(t *testing.T) {
	doc := resolutionDoc(t)
	q := &Quote{Span: Span{3, 5}, Authors: []*Author{{Head: 20, Tokens: []int{20}}}, Cue: 6}

	NewResolution(testLexicon).Resolve(doc, []*Quote{q}, []Name{maria})
	assert.Equal(t, []int{3, 4}, q.Authors[0].Tokens)
}

func TestResolveSharedAuthor(t *testing.T) {
	doc := resolutionDoc(t)
	q := quoteAt(40, 41)
	cont := &Quote{Span: Span{43, 44}, Authors: q.Authors, Direct: true, Cue: -1}

	NewResolution(testLexicon).Resolve(doc, []*Quote{q, cont}, []Name{maria})
	assert.Equal(t, "Maria Virtanen", cont.Authors[0].Render(doc))
}

func TestResolveSharedAuthorAtFirstQuoteOnly(t *testing.T) {
	doc := resolutionDoc(t)
	q := quoteAt(5, 20)
	cont := &Quote{Span: Span{35, 36}, Authors: q.Authors, Direct: true, Cue: -1}
	late := Name{Index: 30, Tokens: []int{3, 4}}

	NewResolution(testLexicon).Resolve(doc, []*Quote{q, cont}, []Name{late})
	assert.Equal(t, []int{20}, q.Authors[0].Tokens,
		"a name after the first quote must not reach its author through the continuation")
}

func TestResolveIdempotent(t *testing.T) {
	doc := resolutionDoc(t)
	quotes := []*Quote{quoteAt(16, 15), quoteAt(19, 20), quoteAt(24, 25), quoteAt(40, 41)}
	names := []Name{maria, pekka}

	NewResolution(testLexicon).Resolve(doc, quotes, names)
	first := make([][]int, len(quotes))
	for i, q := range quotes {
		first[i] = append([]int(nil), q.Authors[0].Tokens...)
	}

	NewResolution(testLexicon).Resolve(doc, quotes, names)
	for i, q := range quotes {
		assert.Equal(t, first[i], q.Authors[0].Tokens)
	}
	assert.Equal(t, "Pekka Korhonen", quotes[0].Authors[0].Render(doc))
	assert.Equal(t, "Pekka Korhonen", quotes[2].Authors[0].Render(doc))
	assert.Equal(t, "Pekka Korhonen", quotes[3].Authors[0].Render(doc))
}

func TestResolveUnknownLeftUnchanged(t *testing.T) {
	doc := resolutionDoc(t)
	q := quoteAt(40, 41)

	NewResolution(testLexicon).Resolve(doc, []*Quote{q}, nil)
	assert.Equal(t, []int{41}, q.Authors[0].Tokens)
}
