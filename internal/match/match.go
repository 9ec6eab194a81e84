// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match finds dependency-pattern matches in a document. Patterns
// follow the spaCy DependencyMatcher layout: an anchor node followed by
// nodes related to earlier ones through relation operators.
package match

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/quote-detection/internal/corpus"
	"github.com/pdiddy/quote-detection/internal/rules"
)

// Match binds one token index to every node of a pattern, in node order.
type Match struct {
	Pattern *rules.Pattern
	Tokens  []int
}

// Token returns the token bound to a slot role, or -1.
func (m Match) Token(role string) int {
	i := m.Pattern.Slot(role)
	if i < 0 || i >= len(m.Tokens) {
		return -1
	}
	return m.Tokens[i]
}

// Matcher runs a fixed set of patterns.
type Matcher struct {
	patterns []*rules.Pattern
}

// New returns a matcher for patterns.
func New(patterns []*rules.Pattern) *Matcher {
	return &Matcher{patterns: patterns}
}

// Find returns all matches of all patterns in doc, pattern by pattern,
// each pattern's matches in ascending order of their bindings.
func (m *Matcher) Find(doc *corpus.Document) []Match {
	var out []Match
	for _, p := range m.patterns {
		out = append(out, FindPattern(doc, p)...)
	}
	return out
}

// FindPattern returns the distinct matches of one pattern.
func FindPattern(doc *corpus.Document, p *rules.Pattern) []Match {
	pos := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		pos[n.RightID] = i
	}

	var (
		out     []Match
		seen    = map[string]bool{}
		binding = make([]int, len(p.Nodes))
		used    = map[int]bool{}
	)

	var extend func(k int)
	extend = func(k int) {
		if k == len(p.Nodes) {
			key := bindingKey(binding)
			if !seen[key] {
				seen[key] = true
				out = append(out, Match{Pattern: p, Tokens: append([]int(nil), binding...)})
			}
			return
		}
		node := p.Nodes[k]
		var candidates []int
		if k == 0 {
			candidates = allTokens(doc)
		} else {
			candidates = related(doc, binding[pos[node.LeftID]], node.RelOp)
		}
		for _, c := range candidates {
			if used[c] || !matchesAttrs(doc.Token(c), node.RightAttrs) {
				continue
			}
			binding[k] = c
			used[c] = true
			extend(k + 1)
			delete(used, c)
		}
	}
	extend(0)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Tokens, out[j].Tokens
		for n := range a {
			if a[n] != b[n] {
				return a[n] < b[n]
			}
		}
		return false
	})
	return out
}

func bindingKey(b []int) string {
	var sb strings.Builder
	for _, i := range b {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(',')
	}
	return sb.String()
}

func allTokens(doc *corpus.Document) []int {
	out := make([]int, doc.Len())
	for i := range out {
		out[i] = i
	}
	return out
}

// attr returns the value of a pattern attribute for t.
func attr(t *corpus.Token, key string) string {
	switch key {
	case "ORTH", "TEXT":
		return t.Word
	case "LOWER":
		return strings.ToLower(t.Word)
	case "LEMMA":
		return t.Lemma
	case "POS":
		return t.POS
	case "DEP":
		return t.Dep
	case "NORM":
		return t.Norm
	}
	return ""
}

func matchesAttrs(t *corpus.Token, attrs map[string]rules.AttrValue) bool {
	for key, want := range attrs {
		if !want.Matches(attr(t, key)) {
			return false
		}
	}
	return true
}
