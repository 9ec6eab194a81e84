// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quote-detection/internal/corpus"
)

// tk is a compact token fixture. Word ids are numbered per sentence.
type tk struct {
	word, lemma, pos, dep string
	head                  int
	par, sent             string
}

func build(t *testing.T, tks []tk) *corpus.Document {
	t.Helper()
	toks := make([]corpus.Token, len(tks))
	word := 0
	for i, x := range tks {
		if i == 0 || x.sent != tks[i-1].sent {
			word = 0
		}
		word++
		lemma := x.lemma
		if lemma == "" {
			lemma = x.word
		}
		toks[i] = corpus.Token{
			Index:       i,
			Word:        x.word,
			Lemma:       lemma,
			POS:         x.pos,
			Dep:         x.dep,
			Head:        x.head,
			ParagraphID: x.par,
			SentenceID:  x.sent,
			WordID:      strconv.Itoa(word),
			SpaceAfter:  true,
		}
	}
	doc, err := corpus.NewDocument("a1", toks)
	require.NoError(t, err)
	return doc
}

// filler returns n self-headed placeholder tokens in one paragraph.
func filler(n int) []tk {
	out := make([]tk, n)
	for i := range out {
		out[i] = tk{word: "x", pos: "X", dep: "root", head: i, par: "1", sent: "1"}
	}
	return out
}
