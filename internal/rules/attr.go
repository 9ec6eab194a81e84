// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// AttrValue constrains one token attribute: an exact value, a set of
// allowed or forbidden values, or a regular expression.
type AttrValue struct {
	Exact    string
	HasExact bool
	In       []string
	NotIn    []string
	Regex    *regexp.Regexp
}

// Exact returns a constraint that requires the value v.
func Exact(v string) AttrValue { return AttrValue{Exact: v, HasExact: true} }

// OneOf returns a constraint that requires one of vs.
func OneOf(vs ...string) AttrValue { return AttrValue{In: vs} }

// UnmarshalYAML accepts a scalar or a mapping with IN, NOT_IN, REGEX.
func (a *AttrValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		a.Exact = value.Value
		a.HasExact = true
		return nil
	}

	var m struct {
		In    []string `yaml:"IN"`
		NotIn []string `yaml:"NOT_IN"`
		Regex string   `yaml:"REGEX"`
	}
	if err := value.Decode(&m); err != nil {
		return err
	}
	a.In = m.In
	a.NotIn = m.NotIn
	if m.Regex != "" {
		re, err := regexp.Compile(m.Regex)
		if err != nil {
			return fmt.Errorf("line %d: invalid REGEX: %w", value.Line, err)
		}
		a.Regex = re
	}
	return nil
}

// Matches reports whether v satisfies the constraint.
func (a AttrValue) Matches(v string) bool {
	if a.HasExact && v != a.Exact {
		return false
	}
	if a.In != nil && !contains(a.In, v) {
		return false
	}
	if contains(a.NotIn, v) {
		return false
	}
	if a.Regex != nil && !a.Regex.MatchString(v) {
		return false
	}
	return true
}

func contains(vs []string, v string) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}
