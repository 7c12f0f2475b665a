// Package rank orders scored sections across the whole collection.
package rank

import (
	"cmp"
	"slices"

	"github.com/dgallion1/docrank/internal/score"
	"github.com/dgallion1/docrank/internal/section"
)

// Scored pairs a section with its score.
type Scored struct {
	Section section.Section
	Score   score.Breakdown
}

// RankedSection is a scored section with its collection-wide rank.
type RankedSection struct {
	Scored
	ImportanceRank int // 1-based, dense
}

// Rank sorts by total score descending, breaking ties by document ingestion
// order, then heading page, then position within the document. The input is
// not modified.
func Rank(scored []Scored) []RankedSection {
	out := make([]RankedSection, len(scored))
	for i, s := range scored {
		out[i] = RankedSection{Scored: s}
	}

	slices.SortStableFunc(out, func(a, b RankedSection) int {
		return Compare(a.Scored, b.Scored)
	})

	for i := range out {
		out[i].ImportanceRank = i + 1
	}
	return out
}

// Compare is the total order used by Rank.
func Compare(a, b Scored) int {
	if c := cmp.Compare(b.Score.Total, a.Score.Total); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Section.DocIndex, b.Section.DocIndex); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Section.Page, b.Section.Page); c != 0 {
		return c
	}
	return cmp.Compare(a.Section.Ordinal, b.Section.Ordinal)
}

// Top returns at most k leading entries of ranked. A non-positive k returns
// nothing.
func Top(ranked []RankedSection, k int) []RankedSection {
	if k <= 0 {
		return nil
	}
	return ranked[:min(k, len(ranked))]
}
