package subsection

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/rank"
	"github.com/dgallion1/docrank/internal/score"
	"github.com/dgallion1/docrank/internal/section"
	"github.com/dgallion1/docrank/internal/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordScorer scores 10 points per occurrence of word.
type keywordScorer struct{ word string }

func (k keywordScorer) Score(text string) score.Breakdown {
	n := float64(strings.Count(strings.ToLower(text), k.word)) * 10
	return score.Breakdown{JobOverlap: n, Total: min(n, 100)}
}

func rankedSection(rankNo, docIndex int, parts ...string) rank.RankedSection {
	sec := section.Section{
		DocID:    fmt.Sprintf("doc%d.pdf", docIndex+1),
		DocIndex: docIndex,
		Page:     1,
		Title:    fmt.Sprintf("Section %d", rankNo),
	}
	for i, p := range parts {
		sec.Parts = append(sec.Parts, segment.TextBlock{
			DocID:    sec.DocID,
			DocIndex: docIndex,
			Page:     1 + i,
			Ordinal:  i,
			Text:     p,
		})
	}
	return rank.RankedSection{Scored: rank.Scored{Section: sec}, ImportanceRank: rankNo}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "upper case after terminator",
			in:   "First sentence here. Second one! Third? yes.",
			want: []string{"First sentence here.", "Second one!", "Third? yes."},
		},
		{
			name: "abbreviation before lower case",
			in:   "See e.g. the results. Done.",
			want: []string{"See e.g. the results.", "Done."},
		},
		{
			name: "line breaks folded",
			in:   "One line\ncontinues. Next\nline.",
			want: []string{"One line continues.", "Next line."},
		},
		{
			name: "full width terminators",
			in:   "これは文です。次の文です！",
			want: []string{"これは文です。", "次の文です！"},
		},
		{
			name: "empty",
			in:   "  \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestExtract_SelectsBestSentences(t *testing.T) {
	rs := rankedSection(1, 0,
		"Filler sentence without the keyword at all. "+
			"Benchmark results are reported for the benchmark suite. "+
			"More filler text that says nothing useful here. "+
			"Another benchmark appears in this longer sentence.",
	)

	spans := Extract([]rank.RankedSection{rs}, keywordScorer{"benchmark"}, Options{PerSection: 2})
	require.Len(t, spans, 2)

	assert.Equal(t, "Benchmark results are reported for the benchmark suite.", spans[0].Text)
	assert.Equal(t, 20.0, spans[0].Score.Total)
	assert.Equal(t, "Another benchmark appears in this longer sentence.", spans[1].Text)
	assert.Equal(t, 1, spans[1].SectionRank)
}

func TestExtract_MergesAdjacentSelections(t *testing.T) {
	rs := rankedSection(1, 0,
		"The benchmark covers graph workloads in depth. "+
			"Each benchmark run uses a fresh cluster today.",
		"Unrelated closing remarks about the weather outside.",
	)

	spans := Extract([]rank.RankedSection{rs}, keywordScorer{"benchmark"}, Options{PerSection: 2})
	require.Len(t, spans, 1)

	assert.Equal(t,
		"The benchmark covers graph workloads in depth. Each benchmark run uses a fresh cluster today.",
		spans[0].Text)
	assert.Equal(t, 20.0, spans[0].Score.Total)
	assert.Equal(t, 1, spans[0].Page)
}

func TestExtract_MergeAcrossParagraphsKeepsFirstPage(t *testing.T) {
	rs := rankedSection(1, 0,
		"Closing sentence of the first paragraph on benchmark.",
		"Opening sentence of the second paragraph on benchmark.",
	)

	spans := Extract([]rank.RankedSection{rs}, keywordScorer{"benchmark"}, Options{PerSection: 2})
	require.Len(t, spans, 1)
	assert.Equal(t, 1, spans[0].Page)
	assert.Contains(t, spans[0].Text, section.ParagraphSeparator)
}

func TestExtract_DropsShortChunks(t *testing.T) {
	rs := rankedSection(1, 0, "Too short. Also short.")
	assert.Empty(t, Extract([]rank.RankedSection{rs}, keywordScorer{"short"}, Options{}))
}

func TestExtract_BoundsPerSectionAndTopK(t *testing.T) {
	sentence := "This sentence is comfortably over the minimum length. "
	var ranked []rank.RankedSection
	for i := 1; i <= 8; i++ {
		// Alternate keyword placement so selections are not all adjacent.
		var sb strings.Builder
		for j := 0; j < 10; j++ {
			if j%2 == 0 {
				sb.WriteString("A benchmark sentence that is long enough to keep. ")
			} else {
				sb.WriteString(sentence)
			}
		}
		ranked = append(ranked, rankedSection(i, i%2, sb.String()))
	}

	opts := Options{TopSections: 3, PerSection: 2}
	spans := Extract(ranked, keywordScorer{"benchmark"}, opts)

	perSection := map[int]int{}
	for _, sp := range spans {
		assert.LessOrEqual(t, sp.SectionRank, opts.TopSections)
		perSection[sp.SectionRank]++
	}
	for r, n := range perSection {
		assert.LessOrEqual(t, n, opts.PerSection, "section rank %d", r)
	}
	assert.Len(t, perSection, 3)
}

func TestExtract_OrderedByScoreThenRank(t *testing.T) {
	ranked := []rank.RankedSection{
		rankedSection(1, 0, "Only one benchmark mention in this sentence here."),
		rankedSection(2, 1, "A benchmark and a second benchmark in one sentence."),
		rankedSection(3, 0, "Again one benchmark mention in this other sentence."),
	}

	spans := Extract(ranked, keywordScorer{"benchmark"}, Options{})
	require.Len(t, spans, 3)

	assert.Equal(t, 2, spans[0].SectionRank)
	assert.Equal(t, 1, spans[1].SectionRank)
	assert.Equal(t, 3, spans[2].SectionRank)
}

func TestExtract_WithRelevanceScorer(t *testing.T) {
	job := "Prepare comprehensive literature review focusing on methodologies and benchmarks"
	p, err := persona.NewProfile("PhD Researcher in Computational Biology", job)
	require.NoError(t, err)
	s := score.NewScorer(job, p)

	rs := rankedSection(1, 0,
		"We thank the reviewers for their many helpful comments. "+
			"Our methodology evaluates each benchmark on a public dataset. "+
			"The building was renovated during the summer months.",
	)

	spans := Extract([]rank.RankedSection{rs}, s, Options{PerSection: 1})
	require.Len(t, spans, 1)
	assert.Equal(t, "Our methodology evaluates each benchmark on a public dataset.", spans[0].Text)
	assert.GreaterOrEqual(t, spans[0].Score.Total, 0.0)
	assert.LessOrEqual(t, spans[0].Score.Total, 100.0)
}
