package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/dgallion1/docrank/internal/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source names one input document and where to read it from.
type Source struct {
	ID   string // Identifier reported in results, usually the listed file name
	Path string
}

// LanguageDetector reports the ISO 639-1 code of a text, or "".
type LanguageDetector interface {
	Detect(text string) string
}

// Loader extracts input files into documents.
type Loader struct {
	opts     parser.Options
	detector LanguageDetector
	workers  int
	log      *zap.Logger
	timings  *Timings
}

// NewLoader creates a loader. detector may be nil.
func NewLoader(opts parser.Options, detector LanguageDetector, workers int, log *zap.Logger) *Loader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		opts:     opts,
		detector: detector,
		workers:  workers,
		log:      log,
		timings:  NewTimings(),
	}
}

// Timings returns the per-document load durations.
func (l *Loader) Timings() *Timings { return l.timings }

// LoadResult holds the documents that were extracted, in input order, and a
// report for every source.
type LoadResult struct {
	Documents []*doctree.Document
	Reports   []*DocumentReport // Aligned with Documents
	Failed    []*DocumentReport // Missing or unreadable sources
}

// AllReports returns every report ordered by input position.
func (r LoadResult) AllReports() []*DocumentReport {
	out := make([]*DocumentReport, 0, len(r.Reports)+len(r.Failed))
	i, j := 0, 0
	for i < len(r.Reports) || j < len(r.Failed) {
		if j == len(r.Failed) || (i < len(r.Reports) && r.Reports[i].Index < r.Failed[j].Index) {
			out = append(out, r.Reports[i])
			i++
			continue
		}
		out = append(out, r.Failed[j])
		j++
	}
	return out
}

// Load extracts sources concurrently. Document.Index is the position of the
// source in sources. A source that cannot be read or parsed is logged,
// reported and left out; it never fails the whole load. The returned error
// is non-nil only when ctx is cancelled.
func (l *Loader) Load(ctx context.Context, sources []Source) (LoadResult, error) {
	docs := make([]*doctree.Document, len(sources))
	reports := make([]*DocumentReport, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, src := range sources {
		reports[i] = NewDocumentReport(src.ID, i, src.Path)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			docs[i] = l.loadOne(src, i, reports[i])
			l.timings.Since(StageLoad, start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, fmt.Errorf("loading documents: %w", err)
	}

	var res LoadResult
	for i, doc := range docs {
		if doc == nil {
			res.Failed = append(res.Failed, reports[i])
			continue
		}
		res.Documents = append(res.Documents, doc)
		res.Reports = append(res.Reports, reports[i])
	}
	return res, nil
}

func (l *Loader) loadOne(src Source, index int, rep *DocumentReport) *doctree.Document {
	log := l.log.With(zap.String("doc_id", src.ID), zap.String("path", src.Path))

	data, err := os.ReadFile(src.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("document not found")
			rep.SetStatus(StatusMissing, "reading")
		} else {
			log.Error("read failed", zap.Error(err))
			rep.SetStatus(StatusFailed, "reading")
		}
		rep.AddError(err.Error())
		return nil
	}

	p, err := parser.ForFile(src.Path, l.opts)
	if err != nil {
		log.Error("unsupported format", zap.Error(err))
		rep.AddError(err.Error())
		rep.SetStatus(StatusFailed, "parsing")
		return nil
	}

	doc, err := p.Parse(bytes.NewReader(data), src.Path)
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		rep.AddError(fmt.Sprintf("parse: %s", err))
		rep.SetStatus(StatusFailed, "parsing")
		return nil
	}
	doc.ID = src.ID
	doc.Index = index
	if l.detector != nil {
		doc.Language = l.detector.Detect(doc.Text())
	}

	rep.SetParsed(doc, ContentHashHex(data))
	log.Debug("parsed document",
		zap.Int("pages", len(doc.Pages)),
		zap.Int("blocks", doc.BlockCount()),
		zap.String("language", doc.Language),
	)
	return doc
}
