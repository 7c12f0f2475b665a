// Package score rates a piece of text against the job description and the
// persona profile of a run.
//
// The total is the sum of four components:
//
//	job overlap      0..40  share of the job's distinct terms found in the text
//	persona keyword  0..30  weighted share of the profile keywords found
//	context bonus    0..15  5 per dominant-vocabulary hit, when it matches the profile bias
//	quality bonus    0..15  15 * (1 - exp(-words/150)), words as counted by tokenize.Words
//
// Every component is rounded to four decimals before summing, and the total
// is clamped to [0, 100].
package score

import (
	"math"

	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/tokenize"
)

const (
	JobOverlapWeight     = 40.0
	PersonaKeywordWeight = 30.0
	ContextBonusMax      = 15.0
	ContextBonusPerHit   = 5.0
	QualityBonusMax      = 15.0

	// QualityScale is the word count at which the quality bonus reaches
	// about 63% of its maximum.
	QualityScale = 150.0
)

// Breakdown holds the components of one score.
type Breakdown struct {
	JobOverlap     float64 `json:"job_overlap"`
	PersonaKeyword float64 `json:"persona_keyword"`
	ContextBonus   float64 `json:"context_bonus"`
	QualityBonus   float64 `json:"quality_bonus"`
	Total          float64 `json:"total"`
}

// Scorer is built once per run and is safe for concurrent use.
type Scorer struct {
	jobTerms []string
	profile  *persona.Profile
}

// NewScorer prepares the job terms once.
func NewScorer(job string, profile *persona.Profile) *Scorer {
	return &Scorer{
		jobTerms: tokenize.Distinct(job),
		profile:  profile,
	}
}

// JobTerms returns the distinct job terms used for overlap.
func (s *Scorer) JobTerms() []string {
	return append([]string(nil), s.jobTerms...)
}

// Score rates text. It never fails; degenerate text scores zero on every
// component.
func (s *Scorer) Score(text string) Breakdown {
	x := tokenize.NewIndex(text)

	b := Breakdown{
		JobOverlap:     round4(s.jobOverlap(x)),
		PersonaKeyword: round4(s.personaKeyword(x)),
		ContextBonus:   round4(s.contextBonus(x)),
		QualityBonus:   round4(QualityBonus(tokenize.Words(text))),
	}
	b.Total = clamp(round4(b.JobOverlap+b.PersonaKeyword+b.ContextBonus+b.QualityBonus), 0, 100)
	return b
}

func (s *Scorer) jobOverlap(x *tokenize.Index) float64 {
	if len(s.jobTerms) == 0 {
		return 0
	}
	hits := 0
	for _, t := range s.jobTerms {
		if x.Has(t) {
			hits++
		}
	}
	return float64(hits) / float64(len(s.jobTerms)) * JobOverlapWeight
}

func (s *Scorer) personaKeyword(x *tokenize.Index) float64 {
	if s.profile == nil || s.profile.TotalWeight <= 0 {
		return 0
	}
	sum := 0.0
	for _, k := range s.profile.Keywords {
		if x.HasPhrase(k.Terms) {
			sum += k.Weight
		}
	}
	return sum / s.profile.TotalWeight * PersonaKeywordWeight
}

func (s *Scorer) contextBonus(x *tokenize.Index) float64 {
	if s.profile == nil || s.profile.Bias == persona.Neutral {
		return 0
	}
	academic, business := persona.VocabularyHits(x)

	var hits int
	switch {
	case academic > business && s.profile.Bias == persona.Academic:
		hits = academic
	case business > academic && s.profile.Bias == persona.Business:
		hits = business
	default:
		return 0
	}
	return math.Min(float64(hits)*ContextBonusPerHit, ContextBonusMax)
}

// QualityBonus is the saturating length reward for a text of words words.
func QualityBonus(words int) float64 {
	if words <= 0 {
		return 0
	}
	return QualityBonusMax * (1 - math.Exp(-float64(words)/QualityScale))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
