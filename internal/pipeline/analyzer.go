// Package pipeline runs a document collection through segmentation, section
// building, scoring, ranking and sub-section extraction.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/header"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/rank"
	"github.com/dgallion1/docrank/internal/score"
	"github.com/dgallion1/docrank/internal/section"
	"github.com/dgallion1/docrank/internal/segment"
	"github.com/dgallion1/docrank/internal/subsection"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidInput reports a blank persona or job description.
var ErrInvalidInput = persona.ErrInvalidInput

// Options tunes an Analyzer. Zero values select defaults.
type Options struct {
	Workers         int
	MinBlockLength  int
	HeaderMaxLength int
	Subsections     subsection.Options
}

// Request is one analysis run.
type Request struct {
	Persona   string
	Job       string
	Documents []*doctree.Document // In ingestion order; Document.Index is ignored

	// Reports, when aligned with Documents, are updated in place; otherwise
	// fresh ones are created.
	Reports []*DocumentReport
}

// Result is the outcome of a run.
type Result struct {
	Profile     *persona.Profile
	Sections    []rank.RankedSection // Ordered by importance rank
	Subsections []subsection.Span    // Ordered by relevance score
	Reports     []*DocumentReport    // Aligned with Request.Documents
	Timings     *Timings
}

// Analyzer is safe for concurrent use; each Run is independent.
type Analyzer struct {
	opts       Options
	classifier *header.Classifier
	log        *zap.Logger
}

func NewAnalyzer(opts Options, log *zap.Logger) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		opts:       opts,
		classifier: header.NewClassifier(opts.HeaderMaxLength),
		log:        log,
	}
}

// Run analyses req. A blank persona or job fails with ErrInvalidInput before
// any document is touched. Documents without substantive text are reported
// as skipped and contribute nothing. The only other error is cancellation
// of ctx.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Result, error) {
	runStart := time.Now()
	timings := NewTimings()

	start := time.Now()
	profile, err := persona.NewProfile(req.Persona, req.Job)
	if err != nil {
		return nil, err
	}
	scorer := score.NewScorer(req.Job, profile)
	timings.Since(StageProfile, start)

	a.log.Info("persona profile",
		zap.String("category", string(profile.Category)),
		zap.String("bias", string(profile.Bias)),
		zap.Strings("job_terms", scorer.JobTerms()),
	)

	reports := req.Reports
	if len(reports) != len(req.Documents) {
		reports = make([]*DocumentReport, len(req.Documents))
		for i, doc := range req.Documents {
			reports[i] = reportFor(doc)
		}
	}

	// Per-document work writes only its own slot.
	perDoc := make([][]section.Section, len(req.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)
	for i, doc := range req.Documents {
		// Position in the request is the ingestion order used to break ties.
		ordered := *doc
		ordered.Index = i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			perDoc[i] = a.buildSections(&ordered, reports[i])
			timings.Since(StageSegment, start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building sections: %w", err)
	}

	var pool []section.Section
	for _, secs := range perDoc {
		pool = append(pool, secs...)
	}

	start = time.Now()
	scored, err := a.scoreAll(ctx, pool, scorer)
	if err != nil {
		return nil, err
	}
	timings.Since(StageScore, start)

	start = time.Now()
	ranked := rank.Rank(scored)
	timings.Since(StageRank, start)

	start = time.Now()
	spans := subsection.Extract(ranked, scorer, a.opts.Subsections)
	timings.Since(StageExtract, start)

	timings.Since(StageAnalysis, runStart)
	a.log.Info("analysis complete",
		zap.Int("documents", len(req.Documents)),
		zap.Int("sections", len(ranked)),
		zap.Int("subsections", len(spans)),
		zap.Duration("elapsed", time.Since(runStart)),
	)
	timings.Log(a.log)

	return &Result{
		Profile:     profile,
		Sections:    ranked,
		Subsections: spans,
		Reports:     reports,
		Timings:     timings,
	}, nil
}

func (a *Analyzer) buildSections(doc *doctree.Document, rep *DocumentReport) []section.Section {
	log := a.log.With(zap.String("doc_id", doc.ID), zap.Int("doc_index", doc.Index))

	blocks := segment.Segment(doc, a.opts.MinBlockLength)
	if len(blocks) == 0 {
		log.Warn("document has no substantive text, skipping")
		rep.SetCounts(0, 0)
		rep.SetStatus(StatusSkippedEmpty, "segmenting")
		return nil
	}

	secs := section.Build(blocks, a.classifier)
	rep.SetCounts(len(blocks), len(secs))
	rep.SetStatus(StatusAnalyzed, "sectioning")
	log.Debug("built sections", zap.Int("blocks", len(blocks)), zap.Int("sections", len(secs)))
	return secs
}

// scoreAll scores sections in parallel, each goroutine owning a contiguous
// stripe of the output.
func (a *Analyzer) scoreAll(ctx context.Context, pool []section.Section, s *score.Scorer) ([]rank.Scored, error) {
	out := make([]rank.Scored, len(pool))
	if len(pool) == 0 {
		return out, nil
	}

	stripe := (len(pool) + a.opts.Workers - 1) / a.opts.Workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(pool); lo += stripe {
		hi := min(lo+stripe, len(pool))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				out[i] = rank.Scored{Section: pool[i], Score: s.Score(pool[i].Body)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring sections: %w", err)
	}
	return out, nil
}
