// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules loads dependency patterns and the lexicon from YAML rule
// files and classifies each pattern into the family that decides how its
// matches are interpreted.
package rules

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed data/*.yaml
var defaults embed.FS

// ErrUnrecognizedPatternFamily marks a pattern id whose prefix names no
// known family. Matches of such patterns are skipped.
var ErrUnrecognizedPatternFamily = errors.New("unrecognized pattern family")

// Kind is the closed set of pattern families.
type Kind int

const (
	UnknownPattern Kind = iota
	QuotePattern
	NamePattern
	ActorPattern
)

func (k Kind) String() string {
	switch k {
	case QuotePattern:
		return "quote"
	case NamePattern:
		return "name"
	case ActorPattern:
		return "actor"
	default:
		return "unknown"
	}
}

// Style refines quote patterns.
type Style int

const (
	// StyleStandard spans are taken from the proposition subtree.
	StyleStandard Style = iota
	// StyleParagraphInitial spans also extend to a hyphen opening the paragraph.
	StyleParagraphInitial
)

// Family is the classification of a pattern id, decided once at load time.
type Family struct {
	Kind  Kind
	Style Style
}

// familyPrefixes is checked in order; longer prefixes come first.
var familyPrefixes = []struct {
	prefix string
	family Family
}{
	{"quote-par-", Family{Kind: QuotePattern, Style: StyleParagraphInitial}},
	{"quote-", Family{Kind: QuotePattern, Style: StyleStandard}},
	{"name-", Family{Kind: NamePattern}},
	{"actor-", Family{Kind: ActorPattern}},
}

// Classify returns the family of a pattern id.
func Classify(id string) Family {
	for _, fp := range familyPrefixes {
		if strings.HasPrefix(id, fp.prefix) {
			return fp.family
		}
	}
	return Family{Kind: UnknownPattern}
}

// Slot roles per family, in positional order.
const (
	SlotCue          = "cue"
	SlotAuthor       = "author"
	SlotProposition  = "proposition"
	SlotName         = "name"
	SlotRole         = "role"
	SlotOrganisation = "organisation"
	SlotLastName     = "lname"
)

var familySlots = map[Kind][]string{
	QuotePattern: {SlotCue, SlotAuthor, SlotProposition},
	NamePattern:  {SlotName},
	ActorPattern: {SlotName, SlotRole, SlotOrganisation, SlotLastName},
}

// positionalSlots overrides the family order for patterns that list their
// nodes differently: actor-2 puts the role noun before the name.
var positionalSlots = map[string][]string{
	"actor-2": {SlotRole, SlotName, SlotOrganisation, SlotLastName},
}

// Node is one element of a dependency pattern. The first node anchors the
// pattern; each later node is related to an earlier one by REL_OP.
type Node struct {
	RightID    string               `yaml:"RIGHT_ID"`
	RightAttrs map[string]AttrValue `yaml:"RIGHT_ATTRS"`
	LeftID     string               `yaml:"LEFT_ID,omitempty"`
	RelOp      string               `yaml:"REL_OP,omitempty"`
}

// Pattern is a named dependency pattern.
type Pattern struct {
	ID     string
	Family Family
	Nodes  []Node

	slots map[string]int
}

// Slot returns the node position bound to a role, or -1.
func (p *Pattern) Slot(role string) int {
	if i, ok := p.slots[role]; ok {
		return i
	}
	return -1
}

// Lexicon holds word lists used by the extractors.
type Lexicon struct {
	MessageNouns []string `yaml:"MESSAGE_NOUNS"`
	Pronouns     []string `yaml:"PRONOUNS"`

	messageNouns map[string]bool
	pronouns     map[string]bool
}

// defaultPronouns are used when the lexicon lists none.
var defaultPronouns = []string{"hän"}

// NewLexicon builds a lexicon from word lists.
func NewLexicon(messageNouns, pronouns []string) *Lexicon {
	l := &Lexicon{MessageNouns: messageNouns, Pronouns: pronouns}
	l.index()
	return l
}

func (l *Lexicon) index() {
	if len(l.Pronouns) == 0 {
		l.Pronouns = defaultPronouns
	}
	l.messageNouns = toSet(l.MessageNouns)
	l.pronouns = toSet(l.Pronouns)
}

// IsMessageNoun reports whether lemma introduces reported speech as a noun.
func (l *Lexicon) IsMessageNoun(lemma string) bool { return l.messageNouns[lemma] }

// IsPronoun reports whether lemma is a third-person pronoun.
func (l *Lexicon) IsPronoun(lemma string) bool { return l.pronouns[lemma] }

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Rules is a loaded rule file.
type Rules struct {
	// Patterns are sorted by id so matching order is reproducible.
	Patterns []*Pattern
	Lexicon  *Lexicon
}

// file is the on-disk layout of a rule file.
type file struct {
	Patterns map[string][]Node `yaml:"PATTERNS"`
	Lexicon  Lexicon           `yaml:"LEXICON"`
}

// Load reads a rule file from disk.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return r, nil
}

// Default returns the embedded rules for a stage ("quotes" or "actors").
func Default(stage string) (*Rules, error) {
	data, err := defaults.ReadFile("data/" + stage + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no default rules for %q", stage)
	}
	return Parse(data)
}

// LoadOrDefault loads path, or the stage defaults when path is empty.
func LoadOrDefault(path, stage string) (*Rules, error) {
	if path == "" {
		return Default(stage)
	}
	return Load(path)
}

// Parse decodes and validates rule file contents.
func Parse(data []byte) (*Rules, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(f.Patterns))
	for id := range f.Patterns {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	r := &Rules{Lexicon: &f.Lexicon}
	r.Lexicon.index()

	for _, id := range ids {
		p := &Pattern{ID: id, Family: Classify(id), Nodes: f.Patterns[id]}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("pattern %s: %w", id, err)
		}
		p.bindSlots()
		r.Patterns = append(r.Patterns, p)
	}
	return r, nil
}

// relOps are the supported relation operators.
var relOps = map[string]bool{
	">": true, "<": true, ">>": true, "<<": true,
	".": true, ".*": true, ";": true, ";*": true,
	"$+": true, "$-": true, "$++": true, "$--": true,
}

// attrKeys are the supported token attributes.
var attrKeys = map[string]bool{
	"ORTH": true, "TEXT": true, "LOWER": true, "LEMMA": true,
	"POS": true, "DEP": true, "NORM": true,
}

func (p *Pattern) validate() error {
	if len(p.Nodes) == 0 {
		return errors.New("no nodes")
	}
	seen := map[string]bool{}
	for i, n := range p.Nodes {
		if n.RightID == "" {
			return fmt.Errorf("node %d: missing RIGHT_ID", i)
		}
		if seen[n.RightID] {
			return fmt.Errorf("node %d: duplicate RIGHT_ID %q", i, n.RightID)
		}
		if i == 0 {
			if n.LeftID != "" || n.RelOp != "" {
				return errors.New("anchor node must not have LEFT_ID or REL_OP")
			}
		} else {
			if !seen[n.LeftID] {
				return fmt.Errorf("node %d: LEFT_ID %q is not an earlier node", i, n.LeftID)
			}
			if !relOps[n.RelOp] {
				return fmt.Errorf("node %d: unsupported REL_OP %q", i, n.RelOp)
			}
		}
		for key := range n.RightAttrs {
			if !attrKeys[key] {
				return fmt.Errorf("node %d: unsupported attribute %q", i, key)
			}
		}
		seen[n.RightID] = true
	}

	if want := familySlots[p.Family.Kind]; len(p.Nodes) < len(want) {
		return fmt.Errorf("%s pattern needs %d nodes, has %d", p.Family.Kind, len(want), len(p.Nodes))
	}
	return nil
}

// bindSlots maps roles to nodes by RIGHT_ID when every role is named,
// otherwise by position in the pattern's positional order.
func (p *Pattern) bindSlots() {
	roles := familySlots[p.Family.Kind]
	if order, ok := positionalSlots[p.ID]; ok {
		roles = order
	}
	p.slots = make(map[string]int, len(roles))

	byName := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		byName[n.RightID] = i
	}
	named := true
	for _, role := range roles {
		if _, ok := byName[role]; !ok {
			named = false
			break
		}
	}

	for i, role := range roles {
		if named {
			p.slots[role] = byName[role]
		} else {
			p.slots[role] = i
		}
	}
}
