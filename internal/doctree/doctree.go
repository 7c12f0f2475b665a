package doctree

import "strings"

// Document is the extracted text of one input file.
type Document struct {
	ID       string  // Document identifier (file name as listed in the input)
	Index    int     // Ingestion order within the collection
	Language string  // ISO 639-1 code of the detected language, empty when unknown
	Pages    []*Page // Pages in reading order
}

// Page holds the raw text blocks of a single page.
type Page struct {
	Number int      // 1-based page number
	Blocks []string // Text fragments split at paragraph breaks, in reading order
}

// AddPage appends a page numbered after the last one and returns it.
func (d *Document) AddPage() *Page {
	p := &Page{Number: len(d.Pages) + 1}
	d.Pages = append(d.Pages, p)
	return p
}

// BlockCount returns the number of raw blocks across all pages.
func (d *Document) BlockCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Blocks)
	}
	return n
}

// Text flattens every block of the document, one block per line.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		for _, b := range p.Blocks {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(b)
		}
	}
	return sb.String()
}
