// Package section groups a document's blocks under the nearest preceding
// heading.
package section

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/header"
	"github.com/dgallion1/docrank/internal/segment"
)

// OrphanTitle names the section holding content that precedes the first
// heading of a document.
const OrphanTitle = "General Content"

// maxTitleRunes bounds section titles; longer headings are cut and marked.
const maxTitleRunes = 100

// ParagraphSeparator joins the blocks of a section body.
const ParagraphSeparator = "\n\n"

// Section is a contiguous run of body blocks under one heading.
type Section struct {
	DocID    string
	DocIndex int
	Page     int // Page of the heading, or of the first block for orphans
	Title    string
	Body     string
	Ordinal  int // Position among the document's surviving sections
	Strength header.Strength
	Parts    []segment.TextBlock // Body blocks in order
}

// Classifier labels a block as heading or body.
type Classifier interface {
	Classify(text string) header.Classification
}

// Build walks blocks in order and groups body blocks under headings. Content
// before the first heading becomes an OrphanTitle section; sections left
// without body text are dropped.
func Build(blocks []segment.TextBlock, c Classifier) []Section {
	var (
		sections []Section
		current  *Section
	)

	closeCurrent := func() {
		if current == nil {
			return
		}
		if len(current.Parts) > 0 {
			current.Ordinal = len(sections)
			current.Body = joinParts(current.Parts)
			sections = append(sections, *current)
		}
		current = nil
	}

	for _, b := range blocks {
		cls := c.Classify(b.Text)
		if cls.IsHeader {
			closeCurrent()
			current = &Section{
				DocID:    b.DocID,
				DocIndex: b.DocIndex,
				Page:     b.Page,
				Title:    Title(b.Text),
				Strength: cls.Strength,
			}
			continue
		}
		if current == nil {
			current = &Section{
				DocID:    b.DocID,
				DocIndex: b.DocIndex,
				Page:     b.Page,
				Title:    OrphanTitle,
			}
		}
		current.Parts = append(current.Parts, b)
	}
	closeCurrent()

	return sections
}

// Title whitespace-normalises a heading and truncates it to maxTitleRunes.
func Title(text string) string {
	t := header.Normalize(text)
	if utf8.RuneCountInString(t) <= maxTitleRunes {
		return t
	}
	return string([]rune(t)[:maxTitleRunes]) + "..."
}

func joinParts(parts []segment.TextBlock) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(ParagraphSeparator)
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
