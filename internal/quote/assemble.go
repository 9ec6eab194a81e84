// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import (
	"sort"
	"strings"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/pkg/types"
)

// SortQuotes orders quotes by proposition start. Ties keep discovery order.
func SortQuotes(quotes []*Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Span.Start < quotes[j].Span.Start
	})
}

// Records flattens sorted quotes into output records.
func Records(doc *corpus.Document, quotes []*Quote) []types.QuoteRecord {
	out := make([]types.QuoteRecord, 0, len(quotes))
	for _, q := range quotes {
		first, last := doc.Token(q.Span.Start), doc.Token(q.Span.End)

		authors := make([]string, len(q.Authors))
		for i, a := range q.Authors {
			authors[i] = a.Render(doc)
		}

		out = append(out, types.QuoteRecord{
			ArticleID:       doc.ArticleID,
			StartSentenceID: first.SentenceID,
			StartWordID:     first.WordID,
			EndSentenceID:   last.SentenceID,
			EndWordID:       last.WordID,
			Author:          strings.Join(authors, "|"),
			AuthorHead:      doc.Token(q.Authors[0].Head).Locator(),
			Direct:          q.Direct,
			Text:            doc.Text(q.Span.Start, q.Span.End),
		})
	}
	return out
}
