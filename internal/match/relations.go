// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import "github.com/pdiddy/quote-detection/internal/corpus"

// related returns the tokens B for which "a op B" holds.
func related(doc *corpus.Document, a int, op string) []int {
	switch op {
	case ">":
		return doc.Children(a)
	case "<":
		if t := doc.Token(a); !t.IsRoot() {
			return []int{t.Head}
		}
		return nil
	case ">>":
		sub := doc.Subtree(a)
		out := make([]int, 0, len(sub)-1)
		for _, i := range sub {
			if i != a {
				out = append(out, i)
			}
		}
		return out
	case "<<":
		var out []int
		for t := doc.Token(a); !t.IsRoot(); t = doc.Token(t.Head) {
			out = append(out, t.Head)
		}
		return out
	case ".":
		if a+1 < doc.Len() {
			return []int{a + 1}
		}
		return nil
	case ".*":
		return span(a+1, doc.Len())
	case ";":
		if a > 0 {
			return []int{a - 1}
		}
		return nil
	case ";*":
		return span(0, a)
	case "$+", "$-", "$++", "$--":
		return siblings(doc, a, op)
	}
	return nil
}

func span(from, to int) []int {
	if from >= to {
		return nil
	}
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// siblings handles the sibling operators: $+ and $- select a sibling
// directly next to a, $++ and $-- any sibling on that side.
func siblings(doc *corpus.Document, a int, op string) []int {
	t := doc.Token(a)
	if t.IsRoot() {
		return nil
	}
	var left, right []int
	for _, s := range doc.Children(t.Head) {
		switch {
		case s < a:
			left = append(left, s)
		case s > a:
			right = append(right, s)
		}
	}
	switch op {
	case "$+":
		if len(right) > 0 && right[0] == a+1 {
			return right[:1]
		}
	case "$-":
		if len(left) > 0 && left[len(left)-1] == a-1 {
			return left[len(left)-1:]
		}
	case "$++":
		return right
	case "$--":
		return left
	}
	return nil
}
