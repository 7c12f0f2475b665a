// Package langdetect identifies the dominant language of extracted text.
package langdetect

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// DefaultLanguages is the candidate set used when none is configured.
var DefaultLanguages = []string{
	"english", "french", "german", "spanish", "italian", "portuguese",
	"dutch", "chinese", "japanese",
}

// sampleRunes bounds how much text a detection looks at.
const sampleRunes = 4000

// Detector wraps a lingua detector limited to a fixed language set. A nil
// *Detector is valid and detects nothing.
type Detector struct {
	mu sync.Mutex
	d  lingua.LanguageDetector
}

// New builds a detector for the named languages. Names match lingua language
// names or ISO 639-1 codes, case-insensitively. At least two are required.
func New(names []string) (*Detector, error) {
	langs := make([]lingua.Language, 0, len(names))
	seen := make(map[lingua.Language]bool)
	for _, n := range names {
		l, ok := Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown language %q", n)
		}
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detection needs at least two languages, got %d", len(langs))
	}

	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	return &Detector{d: d}, nil
}

// Lookup resolves a language name or ISO 639-1 code.
func Lookup(name string) (lingua.Language, bool) {
	name = strings.TrimSpace(name)
	for _, l := range lingua.AllLanguages() {
		if strings.EqualFold(l.String(), name) || strings.EqualFold(l.IsoCode639_1().String(), name) {
			return l, true
		}
	}
	return lingua.Unknown, false
}

// Detect returns the lower-case ISO 639-1 code of the dominant language of
// text, or "" when it cannot be decided.
func (d *Detector) Detect(text string) string {
	if d == nil {
		return ""
	}
	text = sample(text)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	d.mu.Lock()
	lang, ok := d.d.DetectLanguageOf(text)
	d.mu.Unlock()
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

func sample(text string) string {
	n := 0
	for i := range text {
		if n == sampleRunes {
			return text[:i]
		}
		n++
	}
	return text
}
