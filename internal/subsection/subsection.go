// Package subsection picks the most relevant sentence runs from the
// top-ranked sections.
package subsection

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/rank"
	"github.com/dgallion1/docrank/internal/score"
	"github.com/dgallion1/docrank/internal/section"
)

const (
	DefaultTopSections    = 5
	DefaultPerSection     = 3
	DefaultMinChunkLength = 30
)

// Options bounds the extraction. Non-positive fields select the defaults.
type Options struct {
	TopSections    int // K: ranked sections considered
	PerSection     int // M: chunks selected per section
	MinChunkLength int // Runes a sentence chunk needs to be scored
}

func (o Options) withDefaults() Options {
	if o.TopSections <= 0 {
		o.TopSections = DefaultTopSections
	}
	if o.PerSection <= 0 {
		o.PerSection = DefaultPerSection
	}
	if o.MinChunkLength <= 0 {
		o.MinChunkLength = DefaultMinChunkLength
	}
	return o
}

// Scorer rates a piece of text.
type Scorer interface {
	Score(text string) score.Breakdown
}

// Span is a refined excerpt of one ranked section.
type Span struct {
	DocID       string
	DocIndex    int
	Page        int // Page of the first sentence in the span
	SectionRank int
	Position    int // Sentence index of the span start within its section
	Text        string
	Score       score.Breakdown
}

type chunk struct {
	seq   int // Sentence index within the section, short ones included
	part  int
	page  int
	text  string
	score score.Breakdown
}

// Extract splits each of the top sections into sentences, keeps the best
// opts.PerSection of them, merges neighbours and re-scores the merged text.
// The result is ordered by score descending, then section rank, then
// position. Sections without a long enough sentence contribute nothing.
func Extract(ranked []rank.RankedSection, s Scorer, opts Options) []Span {
	opts = opts.withDefaults()

	var spans []Span
	for _, rs := range rank.Top(ranked, opts.TopSections) {
		spans = append(spans, extractSection(rs, s, opts)...)
	}

	slices.SortStableFunc(spans, func(a, b Span) int {
		if c := cmp.Compare(b.Score.Total, a.Score.Total); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SectionRank, b.SectionRank); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
	return spans
}

func extractSection(rs rank.RankedSection, s Scorer, opts Options) []Span {
	chunks := sentenceChunks(rs.Section, opts.MinChunkLength)
	if len(chunks) == 0 {
		return nil
	}
	for i := range chunks {
		chunks[i].score = s.Score(chunks[i].text)
	}

	selected := slices.Clone(chunks)
	slices.SortStableFunc(selected, func(a, b chunk) int {
		if c := cmp.Compare(b.score.Total, a.score.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	selected = selected[:min(opts.PerSection, len(selected))]
	slices.SortFunc(selected, func(a, b chunk) int { return cmp.Compare(a.seq, b.seq) })

	var spans []Span
	for _, run := range adjacentRuns(selected) {
		sp := Span{
			DocID:       rs.Section.DocID,
			DocIndex:    rs.Section.DocIndex,
			Page:        run[0].page,
			SectionRank: rs.ImportanceRank,
			Position:    run[0].seq,
		}
		if len(run) == 1 {
			sp.Text, sp.Score = run[0].text, run[0].score
		} else {
			sp.Text = joinRun(run)
			sp.Score = s.Score(sp.Text)
		}
		spans = append(spans, sp)
	}
	return spans
}

func sentenceChunks(sec section.Section, minLength int) []chunk {
	var (
		out []chunk
		seq int
	)
	for i, p := range sec.Parts {
		for _, sent := range SplitSentences(p.Text) {
			if utf8.RuneCountInString(sent) >= minLength {
				out = append(out, chunk{seq: seq, part: i, page: p.Page, text: sent})
			}
			seq++
		}
	}
	return out
}

// adjacentRuns groups chunks, already in sentence order, into runs of
// consecutive sentences.
func adjacentRuns(chunks []chunk) [][]chunk {
	var runs [][]chunk
	for i, c := range chunks {
		if i > 0 && c.seq == chunks[i-1].seq+1 {
			runs[len(runs)-1] = append(runs[len(runs)-1], c)
			continue
		}
		runs = append(runs, []chunk{c})
	}
	return runs
}

func joinRun(run []chunk) string {
	var sb strings.Builder
	for i, c := range run {
		if i > 0 {
			if c.part != run[i-1].part {
				sb.WriteString(section.ParagraphSeparator)
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(c.text)
	}
	return sb.String()
}

// SplitSentences breaks text at ". ", "! " or "? " when the next word starts
// with an upper-case letter, and after the full-width terminators 。！？.
// Line breaks inside a sentence are folded to spaces.
func SplitSentences(text string) []string {
	runes := []rune(strings.Join(strings.Fields(text), " "))

	var (
		out   []string
		start int
	)
	emit := func(end int) {
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
	}

	for i, r := range runes {
		switch r {
		case '。', '！', '？':
			emit(i + 1)
		case '.', '!', '?':
			if i+2 < len(runes) && runes[i+1] == ' ' && unicode.IsUpper(runes[i+2]) {
				emit(i + 1)
			}
		}
	}
	emit(len(runes))
	return out
}
