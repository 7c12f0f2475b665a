package parser

import (
	"io"

	"github.com/dgallion1/docrank/internal/doctree"
)

// TextParser handles plain text files. Form feeds separate pages and blank
// lines separate blocks.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &doctree.Document{ID: filename}
	if len(data) == 0 {
		return doc, nil
	}
	for _, text := range splitPages(string(data)) {
		page := doc.AddPage()
		page.Blocks = splitBlocks(text)
	}
	return doc, nil
}
