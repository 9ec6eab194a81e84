// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus holds the parsed-text data model: tokens with their
// linguistic annotation arranged as a dependency tree, and documents
// read from CoNLL-CSV files.
package corpus

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformedDocument marks a document whose rows are internally
// inconsistent. Such documents are dropped whole.
var ErrMalformedDocument = errors.New("malformed document")

// Token is one word of a document with its parser annotation.
type Token struct {
	// Index is the document-local position; it defines the total order.
	Index int

	Word  string
	Lemma string
	POS   string
	Feats string
	Dep   string

	// Norm is the normalized form used to recognize quotation marks and hyphens.
	Norm string

	// Head is the index of the syntactic head. Roots point to themselves.
	Head int

	ParagraphID string
	SentenceID  string
	WordID      string

	SpaceAfter bool
}

// IsRoot reports whether the token heads its own sentence.
func (t *Token) IsRoot() bool { return t.Head == t.Index }

// IsPunct reports whether the token is attached as punctuation.
func (t *Token) IsPunct() bool { return t.Dep == "punct" }

// IsQuotationMark reports whether the token normalizes to a double quote.
func (t *Token) IsQuotationMark() bool { return t.Norm == `"` }

// IsHyphen reports whether the token normalizes to a hyphen or dash.
func (t *Token) IsHyphen() bool { return t.Norm == "-" }

// Locator returns the "sentenceId-wordId" reference of the token.
func (t *Token) Locator() string { return t.SentenceID + "-" + t.WordID }

// Document is an article: an ordered token arena with a dependency tree.
type Document struct {
	ArticleID string
	Tokens    []Token

	children [][]int
}

// NewDocument validates tokens and builds the child index. Token indices
// must equal their positions, heads must lie inside the document and be
// acyclic, and numeric paragraph and sentence ids must not decrease.
// A missing Norm is filled from the word.
func NewDocument(articleID string, tokens []Token) (*Document, error) {
	d := &Document{
		ArticleID: articleID,
		Tokens:    tokens,
		children:  make([][]int, len(tokens)),
	}

	prevPar, prevSent := -1, -1
	for i := range tokens {
		t := &d.Tokens[i]
		if t.Index != i {
			return nil, fmt.Errorf("%w: token %d has index %d", ErrMalformedDocument, i, t.Index)
		}
		if t.Head < 0 || t.Head >= len(tokens) {
			return nil, fmt.Errorf("%w: token %s head %d outside document", ErrMalformedDocument, t.Locator(), t.Head)
		}
		if t.Norm == "" {
			t.Norm = Normalize(t.Word)
		}
		if n, err := strconv.Atoi(t.ParagraphID); err == nil {
			if n < prevPar {
				return nil, fmt.Errorf("%w: paragraph id %s decreases at %s", ErrMalformedDocument, t.ParagraphID, t.Locator())
			}
			prevPar = n
		}
		if n, err := strconv.Atoi(t.SentenceID); err == nil {
			if n < prevSent {
				return nil, fmt.Errorf("%w: sentence id %s decreases at %s", ErrMalformedDocument, t.SentenceID, t.Locator())
			}
			prevSent = n
		}
		if !t.IsRoot() {
			d.children[t.Head] = append(d.children[t.Head], i)
		}
	}

	if err := d.checkAcyclic(); err != nil {
		return nil, err
	}
	return d, nil
}

// checkAcyclic verifies that every head chain ends in a root.
func (d *Document) checkAcyclic() error {
	const (
		unseen = iota
		active
		done
	)
	state := make([]int, len(d.Tokens))
	for i := range d.Tokens {
		var path []int
		j := i
		for state[j] == unseen {
			state[j] = active
			path = append(path, j)
			if d.Tokens[j].IsRoot() {
				break
			}
			j = d.Tokens[j].Head
		}
		if state[j] == active && !d.Tokens[j].IsRoot() {
			return fmt.Errorf("%w: head cycle through %s", ErrMalformedDocument, d.Tokens[j].Locator())
		}
		for _, k := range path {
			state[k] = done
		}
	}
	return nil
}

// Len returns the number of tokens.
func (d *Document) Len() int { return len(d.Tokens) }

// Token returns the token at index i.
func (d *Document) Token(i int) *Token { return &d.Tokens[i] }

// Children returns the direct dependents of token i in document order.
func (d *Document) Children(i int) []int { return d.children[i] }

// Subtree returns token i and all of its descendants in document order.
func (d *Document) Subtree(i int) []int {
	out := []int{i}
	stack := []int{i}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range d.children[n] {
			out = append(out, c)
			stack = append(stack, c)
		}
	}
	sort.Ints(out)
	return out
}

// InSubtree reports whether token i is root or one of its descendants.
func (d *Document) InSubtree(root, i int) bool {
	for {
		if i == root {
			return true
		}
		t := &d.Tokens[i]
		if t.IsRoot() {
			return false
		}
		i = t.Head
	}
}

// ParagraphStart returns the first token of the paragraph containing token i.
func (d *Document) ParagraphStart(i int) int {
	par := d.Tokens[i].ParagraphID
	for i > 0 && d.Tokens[i-1].ParagraphID == par {
		i--
	}
	return i
}

// Text renders the surface words of tokens start..end inclusive.
func (d *Document) Text(start, end int) string {
	var b strings.Builder
	for i := start; i <= end && i < len(d.Tokens); i++ {
		t := &d.Tokens[i]
		b.WriteString(t.Word)
		if t.SpaceAfter && i < end {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// normExceptions maps typographic variants onto the plain quotation mark
// and hyphen.
var normExceptions = map[string]string{
	"“": `"`, "”": `"`, "„": `"`, "«": `"`, "»": `"`,
	"''": `"`, "``": `"`, "‘‘": `"`, "’’": `"`, "´´": `"`,
	"–": "-", "—": "-", "--": "-", "---": "-", "‒": "-", "―": "-",
	"’": "'", "‘": "'", "´": "'", "`": "'",
	"…": "...",
}

// Normalize returns the normalized form of a word.
func Normalize(word string) string {
	if n, ok := normExceptions[word]; ok {
		return n
	}
	return strings.ToLower(word)
}
