package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestCSVParser_HeaderAndBatches(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("city,dish\n")
	for i := 0; i < csvBatchSize+5; i++ {
		fmt.Fprintf(&sb, "Town %d,Dish %d\n", i, i)
	}

	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(sb.String()), "food.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := doc.Pages[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("expected header plus 2 batches, got %d blocks", len(blocks))
	}
	if blocks[0] != "city dish" {
		t.Errorf("expected header block %q, got %q", "city dish", blocks[0])
	}
	if !strings.HasPrefix(blocks[1], "city: Town 0, dish: Dish 0\n") {
		t.Errorf("unexpected first batch %q", blocks[1])
	}
	if n := strings.Count(blocks[2], "\n") + 1; n != 5 {
		t.Errorf("expected 5 rows in last batch, got %d", n)
	}
}

func TestCSVParser_RaggedRows(t *testing.T) {
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader("a,b\n1,2,3\n4\n"), "ragged.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a: 1, b: 2, 3\na: 4"
	if got := doc.Pages[0].Blocks[1]; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected no pages, got %d", len(doc.Pages))
	}
}
