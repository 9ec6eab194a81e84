// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quote-detection/internal/rules"
)

// Virtanen sanoo, että talous kasvaa.
var complementSentence = []tk{
	{"Virtanen", "", "PROPN", "nsubj", 1, "1", "1"},
	{"sanoo", "sanoa", "VERB", "root", 1, "1", "1"},
	{",", "", "PUNCT", "punct", 5, "1", "1"},
	{"että", "", "SCONJ", "mark", 5, "1", "1"},
	{"talous", "", "NOUN", "nsubj", 5, "1", "1"},
	{"kasvaa", "", "VERB", "ccomp", 1, "1", "1"},
	{".", "", "PUNCT", "punct", 1, "1", "1"},
}

// – Talous kasvaa, Virtanen sanoo.
var parataxisSentence = []tk{
	{"–", "", "PUNCT", "punct", 2, "1", "1"},
	{"Talous", "talous", "NOUN", "nsubj", 2, "1", "1"},
	{"kasvaa", "", "VERB", "root", 2, "1", "1"},
	{",", "", "PUNCT", "punct", 5, "1", "1"},
	{"Virtanen", "", "PROPN", "nsubj", 5, "1", "1"},
	{"sanoo", "sanoa", "VERB", "parataxis", 2, "1", "1"},
	{".", "", "PUNCT", "punct", 2, "1", "1"},
}

// Eilen kokouksessa Virtanen myös sanoi “talous kasvaa nopeasti”.
// The quoted clause is the root and the cue hangs off it.
var quotedAfterCue = []tk{
	{"Eilen", "eilen", "ADV", "advmod", 5, "1", "1"},
	{"pidetyssä", "pitää", "VERB", "acl", 2, "1", "1"},
	{"kokouksessa", "kokous", "NOUN", "obl", 5, "1", "1"},
	{"Virtanen", "", "PROPN", "nsubj", 5, "1", "1"},
	{"myös", "", "ADV", "advmod", 5, "1", "1"},
	{"sanoi", "sanoa", "VERB", "parataxis", 8, "1", "1"},
	{"“", "", "PUNCT", "punct", 8, "1", "1"},
	{"talous", "", "NOUN", "nsubj", 8, "1", "1"},
	{"kasvaa", "", "VERB", "root", 8, "1", "1"},
	{"nopeasti", "", "ADV", "advmod", 8, "1", "1"},
	{"”", "", "PUNCT", "punct", 8, "1", "1"},
	{".", "", "PUNCT", "punct", 8, "1", "1"},
}

// “Talous kasvaa”, Virtanen sanoo.
var quotedBeforeCue = []tk{
	{"“", "", "PUNCT", "punct", 2, "1", "1"},
	{"Talous", "talous", "NOUN", "nsubj", 2, "1", "1"},
	{"kasvaa", "", "VERB", "root", 2, "1", "1"},
	{"”", "", "PUNCT", "punct", 2, "1", "1"},
	{",", "", "PUNCT", "punct", 6, "1", "1"},
	{"Virtanen", "", "PROPN", "nsubj", 6, "1", "1"},
	{"sanoo", "sanoa", "VERB", "parataxis", 2, "1", "1"},
	{".", "", "PUNCT", "punct", 2, "1", "1"},
}

func TestExtractProposition(t *testing.T) {
	// Closing mark only: no partner encloses the proposition head.
	unbalanced := append([]tk(nil), quotedBeforeCue...)
	unbalanced[0] = tk{"Nyt", "nyt", "ADV", "advmod", 2, "1", "1"}

	tests := []struct {
		name       string
		tokens     []tk
		cue, prop  int
		style      rules.Style
		wantSpan   Span
		wantDirect bool
	}{
		{
			name:     "complement keeps full subtree with punctuation",
			tokens:   complementSentence,
			cue:      1, prop: 5,
			wantSpan: Span{2, 5},
		},
		{
			name:     "cue subtree and punctuation removed",
			tokens:   parataxisSentence,
			cue:      5, prop: 2,
			wantSpan: Span{1, 2},
		},
		{
			name:       "paragraph-initial hyphen extends span",
			tokens:     parataxisSentence,
			cue:        5, prop: 2,
			style:      rules.StyleParagraphInitial,
			wantSpan:   Span{0, 2},
			wantDirect: true,
		},
		{
			name:       "quotation marks after cue override subtree",
			tokens:     quotedAfterCue,
			cue:        5, prop: 8,
			wantSpan:   Span{6, 10},
			wantDirect: true,
		},
		{
			name:       "quotation marks before cue",
			tokens:     quotedBeforeCue,
			cue:        6, prop: 2,
			wantSpan:   Span{0, 3},
			wantDirect: true,
		},
		{
			name:     "unbalanced quotation mark ignored",
			tokens:   unbalanced,
			cue:      6, prop: 2,
			wantSpan: Span{0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := build(t, tt.tokens)
			span, direct, err := ExtractProposition(doc, tt.cue, tt.prop, tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSpan, span)
			assert.Equal(t, tt.wantDirect, direct)
		})
	}
}

func TestExtractPropositionEmpty(t *testing.T) {
	doc := build(t, parataxisSentence)
	_, _, err := ExtractProposition(doc, 5, 6, rules.StyleStandard)
	assert.ErrorIs(t, err, ErrEmptyProposition)
}

func TestExtractPropositionQuotedSpanBoundaries(t *testing.T) {
	for _, tokens := range [][]tk{quotedAfterCue, quotedBeforeCue} {
		doc := build(t, tokens)
		var cue, prop int
		for i := range tokens {
			switch tokens[i].dep {
			case "parataxis":
				cue = i
			case "root":
				prop = i
			}
		}
		span, direct, err := ExtractProposition(doc, cue, prop, rules.StyleStandard)
		require.NoError(t, err)
		require.True(t, direct)
		assert.True(t, doc.Token(span.Start).IsQuotationMark())
		assert.True(t, doc.Token(span.End).IsQuotationMark())
		assert.False(t, span.Contains(cue))
	}
}
