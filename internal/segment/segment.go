// Package segment flattens extracted pages into the ordered text blocks the
// section builder works on.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/doctree"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinLength is the rune count a trimmed block must exceed to be kept.
const DefaultMinLength = 3

// TextBlock is one substantive fragment of a document.
type TextBlock struct {
	DocID    string
	DocIndex int // Ingestion order of the owning document
	Page     int // 1-based
	Ordinal  int // Position of the fragment within its page
	Text     string
}

// Segment returns the substantive blocks of doc in page order, then in-page
// order. A block survives when its trimmed, NFC-normalised text is longer
// than minLength runes and contains at least one letter; this drops page
// numbers, running furniture and stray punctuation. A non-positive minLength
// selects DefaultMinLength.
func Segment(doc *doctree.Document, minLength int) []TextBlock {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	var blocks []TextBlock
	for _, page := range doc.Pages {
		for i, raw := range page.Blocks {
			text := strings.TrimSpace(norm.NFC.String(raw))
			if !substantive(text, minLength) {
				continue
			}
			blocks = append(blocks, TextBlock{
				DocID:    doc.ID,
				DocIndex: doc.Index,
				Page:     page.Number,
				Ordinal:  i,
				Text:     text,
			})
		}
	}
	return blocks
}

func substantive(text string, minLength int) bool {
	if utf8.RuneCountInString(text) <= minLength {
		return false
	}
	return strings.IndexFunc(text, unicode.IsLetter) >= 0
}
