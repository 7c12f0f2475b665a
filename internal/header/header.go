// Package header decides whether a text block is a section heading using
// layout-free text rules.
package header

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLength caps the rune length of anything treated as a heading.
const DefaultMaxLength = 80

// maxTitleWords bounds the title that follows a numbered prefix.
const maxTitleWords = 12

// Strength ranks how confident a rule is that a block is a heading.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "weak"
	case StrengthMedium:
		return "medium"
	case StrengthStrong:
		return "strong"
	}
	return "none"
}

// Classification is the outcome for one block.
type Classification struct {
	IsHeader bool
	Strength Strength
	Rule     string // Name of the matching rule, empty for body text
}

// Rule is one independent heading detector. Match receives whitespace
// normalised text that is already known to fit the length cap.
type Rule struct {
	Name     string
	Strength Strength
	Match    func(text string) bool
}

// AcademicMarkers and BusinessMarkers are matched whole, case-insensitively.
var (
	AcademicMarkers = []string{
		"abstract", "introduction", "background", "related work",
		"literature review", "methodology", "methods", "materials and methods",
		"experiments", "results", "evaluation", "discussion", "limitations",
		"future work", "conclusion", "conclusions", "references",
		"bibliography", "acknowledgements", "acknowledgments", "appendix",
	}
	BusinessMarkers = []string{
		"executive summary", "financial highlights", "financial statements",
		"market analysis", "market overview", "strategy", "strategic priorities",
		"risk factors", "outlook", "recommendations", "key findings",
		"overview", "summary",
	}
)

var numberedRe = regexp.MustCompile(
	`^(?:(?i:chapter|section|part)\s+(?:\d+|[IVXLCivxlc]+)[.:]?|\d{1,3}(?:\.\d{1,3})*\.?|[A-Z]\.|[IVXLC]{1,5}\.)\s+(\pL.*)$`,
)

// Classifier applies its rules in order; the first match wins.
type Classifier struct {
	rules     []Rule
	maxLength int
}

// NewClassifier builds the default numbered, all-caps, keyword rule chain.
// A non-positive maxLength selects DefaultMaxLength.
func NewClassifier(maxLength int) *Classifier {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Classifier{
		rules:     DefaultRules(),
		maxLength: maxLength,
	}
}

// WithRules returns a classifier using rules in the given order.
func WithRules(maxLength int, rules ...Rule) *Classifier {
	c := NewClassifier(maxLength)
	c.rules = rules
	return c
}

// DefaultRules returns the built-in rule chain in evaluation order.
func DefaultRules() []Rule {
	markers := make(map[string]struct{}, len(AcademicMarkers)+len(BusinessMarkers))
	for _, m := range AcademicMarkers {
		markers[m] = struct{}{}
	}
	for _, m := range BusinessMarkers {
		markers[m] = struct{}{}
	}
	return []Rule{
		{Name: "numbered", Strength: StrengthStrong, Match: IsNumbered},
		{Name: "all_caps", Strength: StrengthWeak, Match: IsAllCaps},
		{Name: "keyword", Strength: StrengthMedium, Match: func(text string) bool {
			_, ok := markers[stripTrailingPunct(strings.ToLower(text))]
			return ok
		}},
	}
}

// Classify labels text as heading or body.
func (c *Classifier) Classify(text string) Classification {
	norm := Normalize(text)
	if norm == "" || utf8.RuneCountInString(norm) > c.maxLength {
		return Classification{}
	}
	for _, r := range c.rules {
		if r.Match(norm) {
			return Classification{IsHeader: true, Strength: r.Strength, Rule: r.Name}
		}
	}
	return Classification{}
}

// IsNumbered matches an outline prefix followed by a short title.
func IsNumbered(text string) bool {
	m := numberedRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	return len(strings.Fields(m[1])) <= maxTitleWords
}

// IsAllCaps reports whether at least three cased letters are present and
// four fifths of them are uppercase.
func IsAllCaps(text string) bool {
	var upper, cased int
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			upper++
			cased++
		case unicode.IsLower(r):
			cased++
		}
	}
	return cased >= 3 && upper*5 >= cased*4
}

// Normalize collapses runs of whitespace to single spaces and trims.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func stripTrailingPunct(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}
