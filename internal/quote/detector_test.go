// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quote-detection/internal/rules"
	"github.com/pdiddy/quote-detection/pkg/types"
)

// articleTokens is a three-paragraph article:
//
//	Maria Virtanen sanoo, että talous kasvaa.
//	– Työttömyys laskee, hän sanoo.
//	– Inflaatio hidastuu.
func articleTokens() []tk {
	return []tk{
		{"Maria", "Maria", "PROPN", "nsubj", 2, "1", "1"},
		{"Virtanen", "Virtanen", "PROPN", "flat:name", 0, "1", "1"},
		{"sanoo", "sanoa", "VERB", "root", 2, "1", "1"},
		{",", "", "PUNCT", "punct", 6, "1", "1"},
		{"että", "", "SCONJ", "mark", 6, "1", "1"},
		{"talous", "", "NOUN", "nsubj", 6, "1", "1"},
		{"kasvaa", "", "VERB", "ccomp", 2, "1", "1"},
		{".", "", "PUNCT", "punct", 2, "1", "1"},
		{"–", "", "PUNCT", "punct", 10, "2", "2"},
		{"Työttömyys", "työttömyys", "NOUN", "nsubj", 10, "2", "2"},
		{"laskee", "laskea", "VERB", "root", 10, "2", "2"},
		{",", "", "PUNCT", "punct", 13, "2", "2"},
		{"hän", "hän", "PRON", "nsubj", 13, "2", "2"},
		{"sanoo", "sanoa", "VERB", "parataxis", 10, "2", "2"},
		{".", "", "PUNCT", "punct", 10, "2", "2"},
		{"–", "", "PUNCT", "punct", 17, "3", "3"},
		{"Inflaatio", "inflaatio", "NOUN", "nsubj", 17, "3", "3"},
		{"hidastuu", "hidastua", "VERB", "root", 17, "3", "3"},
		{".", "", "PUNCT", "punct", 17, "3", "3"},
	}
}

func defaultRules(t *testing.T) *rules.Rules {
	t.Helper()
	r, err := rules.Default("quotes")
	require.NoError(t, err)
	return r
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		resolve bool
		authors []string
	}{
		{"with resolution", true, []string{"Maria Virtanen", "Maria Virtanen", "Maria Virtanen"}},
		{"without resolution", false, []string{"Maria Virtanen", "hän", "hän"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := build(t, articleTokens())
			res := NewDetector(defaultRules(t), Options{Resolve: tt.resolve}).Detect(doc)

			want := []types.QuoteRecord{
				{ArticleID: "a1", StartSentenceID: "1", StartWordID: "4", EndSentenceID: "1", EndWordID: "7",
					AuthorHead: "1-1", Direct: false, Text: ", että talous kasvaa"},
				{ArticleID: "a1", StartSentenceID: "2", StartWordID: "1", EndSentenceID: "2", EndWordID: "3",
					AuthorHead: "2-5", Direct: true, Text: "– Työttömyys laskee"},
				{ArticleID: "a1", StartSentenceID: "3", StartWordID: "1", EndSentenceID: "3", EndWordID: "4",
					AuthorHead: "2-5", Direct: true, Text: "– Inflaatio hidastuu ."},
			}
			for i := range want {
				want[i].Author = tt.authors[i]
			}
			assert.Equal(t, want, res.Records)
			assert.Equal(t, DocStats{Matches: 3, Quotes: 2, Continuations: 1, Names: 1}, res.Stats)
		})
	}
}

func TestDetectSkipsFailingCandidates(t *testing.T) {
	r, err := rules.Parse([]byte(`
PATTERNS:
  quote-punct:
    - RIGHT_ID: cue
      RIGHT_ATTRS: {DEP: parataxis}
    - LEFT_ID: cue
      REL_OP: ">"
      RIGHT_ID: author
      RIGHT_ATTRS: {DEP: nsubj}
    - LEFT_ID: cue
      REL_OP: "$++"
      RIGHT_ID: proposition
      RIGHT_ATTRS: {DEP: punct}
  other-verbs:
    - RIGHT_ID: verb
      RIGHT_ATTRS: {LEMMA: hidastua}
`))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	doc := build(t, articleTokens())

	res := NewDetector(r, Options{Logger: logger}).Detect(doc)
	assert.Empty(t, res.Records)
	assert.Equal(t, 2, res.Stats.Skipped)
	assert.Contains(t, logs.String(), ErrEmptyProposition.Error())
	assert.Contains(t, logs.String(), rules.ErrUnrecognizedPatternFamily.Error())
	assert.Contains(t, logs.String(), "articleId=a1")
}

func TestDetectDeduplicatesTriples(t *testing.T) {
	r := defaultRules(t)
	for _, p := range r.Patterns {
		if p.ID == "quote-ccomp" || p.ID == "name-full" {
			dup := *p
			dup.ID += "-copy"
			r.Patterns = append(r.Patterns, &dup)
		}
	}

	doc := build(t, articleTokens())
	res := NewDetector(r, Options{Resolve: true}).Detect(doc)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 5, res.Stats.Matches)
	assert.Equal(t, 2, res.Stats.Quotes)
	assert.Equal(t, 1, res.Stats.Names)
}

func TestDetectRecordInvariants(t *testing.T) {
	doc := build(t, articleTokens())
	d := NewDetector(defaultRules(t), Options{Resolve: true})

	var stats DocStats
	quotes, _ := d.Extract(doc, &stats)
	all := append(quotes, FindContinuations(doc, quotes)...)
	for _, q := range all {
		assert.LessOrEqual(t, q.Span.Start, q.Span.End)
		assert.GreaterOrEqual(t, q.Span.Start, 0)
		assert.Less(t, q.Span.End, doc.Len())
		require.NotEmpty(t, q.Authors)
		for _, a := range q.Authors {
			assert.NotEmpty(t, a.Tokens)
		}
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write([]types.QuoteRecord{
		{ArticleID: "a1", StartSentenceID: "2", StartWordID: "1", EndSentenceID: "2", EndWordID: "3",
			Author: "Maria Virtanen|Pekka Korhonen", AuthorHead: "2-5", Direct: true},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "articleId,startSentenceId,startWordId,endSentenceId,endWordId,author,authorHead,direct", lines[0])
	assert.Equal(t, "a1,2,1,2,3,Maria Virtanen|Pekka Korhonen,2-5,true", lines[1])
}

func TestSummary(t *testing.T) {
	s := Summary{Documents: 3, DocStats: DocStats{Quotes: 4, Continuations: 1}}
	assert.Equal(t, 5, s.Total())
	assert.False(t, s.HasFailures())
	s.Add(DocStats{Skipped: 1})
	assert.True(t, s.HasFailures())
	assert.Equal(t, "documents: 3, dropped: 0, quotes: 4, continuations: 1, skipped: 1", s.String())
}
