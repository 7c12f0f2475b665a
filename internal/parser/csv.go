package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
)

// CSVParser handles CSV files. The header row is one block and data rows
// are grouped into blocks of csvBatchSize rows, each rendered as
// "column: value" pairs.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &doctree.Document{ID: filename}
	if len(records) == 0 {
		return doc, nil
	}
	page := doc.AddPage()

	headers := records[0]
	page.Blocks = append(page.Blocks, strings.Join(headers, " "))

	dataRows := records[1:]
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		var text strings.Builder
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j > 0 {
					text.WriteString(", ")
				}
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
			}
			text.WriteString("\n")
		}
		page.Blocks = append(page.Blocks, strings.TrimSpace(text.String()))
	}

	return doc, nil
}
