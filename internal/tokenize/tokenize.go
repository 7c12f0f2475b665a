// Package tokenize turns free text into the comparable terms used for
// keyword and overlap matching.
//
// Terms are maximal runs of letters and digits, Unicode case-folded, with
// stop words and single-rune terms removed. Pure-ASCII terms are reduced with
// the Snowball English stemmer so "benchmarks" and "benchmark" compare equal;
// other scripts are kept folded but unstemmed.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
)

// Terms returns the terms of text in order of appearance, duplicates kept.
func Terms(text string) []string {
	// A Caser carries state, so each call gets its own.
	folded := cases.Fold().String(text)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || IsStopword(f) {
			continue
		}
		terms = append(terms, stem(f))
	}
	return terms
}

// Distinct returns the unique terms of text in order of first appearance.
func Distinct(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range Terms(text) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func stem(term string) string {
	for i := 0; i < len(term); i++ {
		if term[i] >= utf8.RuneSelf {
			return term
		}
	}
	return english.Stem(term, false)
}

// Index answers term and phrase membership questions about one text.
type Index struct {
	terms []string
	set   map[string]struct{}
}

// NewIndex tokenizes text once for repeated lookups.
func NewIndex(text string) *Index {
	terms := Terms(text)
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return &Index{terms: terms, set: set}
}

// Len is the number of terms, duplicates included.
func (x *Index) Len() int { return len(x.terms) }

// Has reports whether term occurs.
func (x *Index) Has(term string) bool {
	_, ok := x.set[term]
	return ok
}

// HasPhrase reports whether phrase occurs as consecutive terms. An empty
// phrase never matches.
func (x *Index) HasPhrase(phrase []string) bool {
	switch len(phrase) {
	case 0:
		return false
	case 1:
		return x.Has(phrase[0])
	}
	if !x.Has(phrase[0]) {
		return false
	}
	for i := 0; i+len(phrase) <= len(x.terms); i++ {
		match := true
		for j, p := range phrase {
			if x.terms[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Phrase is a keyword prepared for matching against an Index.
type Phrase struct {
	Text  string
	Terms []string
}

// NewPhrase tokenizes a keyword.
func NewPhrase(text string) Phrase {
	return Phrase{Text: text, Terms: Terms(text)}
}

// Phrases prepares a keyword list.
func Phrases(texts ...string) []Phrase {
	out := make([]Phrase, len(texts))
	for i, t := range texts {
		out[i] = NewPhrase(t)
	}
	return out
}

// CountPresent returns how many of phrases occur in x.
func (x *Index) CountPresent(phrases []Phrase) int {
	n := 0
	for _, p := range phrases {
		if x.HasPhrase(p.Terms) {
			n++
		}
	}
	return n
}

// unspaced lists scripts written without spaces between words.
var unspaced = []*unicode.RangeTable{
	unicode.Han, unicode.Hiragana, unicode.Katakana,
	unicode.Thai, unicode.Lao, unicode.Khmer, unicode.Myanmar,
}

// Words estimates the word count of text. Whitespace separates words, and
// every rune of a script written without spaces counts as a word of its own.
func Words(text string) int {
	n := 0
	for _, f := range strings.Fields(text) {
		runes, other := 0, false
		for _, r := range f {
			if unicode.In(r, unspaced...) {
				runes++
			} else if unicode.IsLetter(r) || unicode.IsNumber(r) {
				other = true
			}
		}
		n += runes
		if runes == 0 || other {
			n++
		}
	}
	return n
}
