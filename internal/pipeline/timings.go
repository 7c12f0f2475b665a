package pipeline

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stage names recorded by Loader and Analyzer.
const (
	StageLoad     = "load"
	StageSegment  = "segment"
	StageProfile  = "profile"
	StageScore    = "score"
	StageRank     = "rank"
	StageExtract  = "extract"
	StageAnalysis = "analysis"
)

// StageSnapshot is a point-in-time aggregate of one stage's samples.
type StageSnapshot struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	SumMs float64 `json:"sum_ms"`
}

// Timings collects stage durations of a run. Per-document stages get one
// sample per document. Timings are only logged; result documents never carry
// them.
type Timings struct {
	mu      sync.Mutex
	samples map[string][]time.Duration
	order   []string
}

func NewTimings() *Timings {
	return &Timings{samples: make(map[string][]time.Duration)}
}

// Record adds a sample for stage. Negative durations count as zero.
func (t *Timings) Record(stage string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.samples[stage]; !ok {
		t.order = append(t.order, stage)
	}
	t.samples[stage] = append(t.samples[stage], d)
}

// Since records the time elapsed from start.
func (t *Timings) Since(stage string, start time.Time) {
	t.Record(stage, time.Since(start))
}

// Snapshot aggregates the samples of stage.
func (t *Timings) Snapshot(stage string) StageSnapshot {
	t.mu.Lock()
	values := append([]time.Duration(nil), t.samples[stage]...)
	t.mu.Unlock()

	if len(values) == 0 {
		return StageSnapshot{}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return StageSnapshot{
		Count: len(values),
		MinMs: ms(values[0]),
		MaxMs: ms(values[len(values)-1]),
		AvgMs: ms(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		SumMs: ms(sum),
	}
}

// Stages returns the recorded stage names in first-recorded order.
func (t *Timings) Stages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// Log writes one debug entry per stage.
func (t *Timings) Log(log *zap.Logger) {
	for _, stage := range t.Stages() {
		s := t.Snapshot(stage)
		log.Debug("stage timing",
			zap.String("stage", stage),
			zap.Int("count", s.Count),
			zap.Float64("sum_ms", s.SumMs),
			zap.Float64("p50_ms", s.P50Ms),
			zap.Float64("p95_ms", s.P95Ms),
			zap.Float64("max_ms", s.MaxMs),
		)
	}
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func percentile(sorted []time.Duration, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return ms(sorted[0])
	}
	if pct >= 100 {
		return ms(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return ms(sorted[lower])
	}
	weight := index - float64(lower)
	lo := ms(sorted[lower])
	hi := ms(sorted[upper])
	return lo + ((hi - lo) * weight)
}
