// Package persona maps a free-text persona onto a fixed category with its
// weighted keyword table and context bias.
package persona

import (
	"errors"
	"strings"

	"github.com/dgallion1/docrank/internal/tokenize"
)

// ErrInvalidInput reports a persona or job description that is empty.
var ErrInvalidInput = errors.New("invalid input")

// Category is the persona's role family.
type Category string

const (
	Researcher Category = "researcher"
	Student    Category = "student"
	Analyst    Category = "analyst"
	Manager    Category = "manager"
	Developer  Category = "developer"
	Consultant Category = "consultant"
	Generic    Category = "generic"
)

// Categories lists the non-generic categories in classification order.
var Categories = []Category{Researcher, Student, Analyst, Manager, Developer, Consultant}

// ContextBias is the vocabulary family the persona and job lean towards.
type ContextBias string

const (
	Academic ContextBias = "academic"
	Business ContextBias = "business"
	Neutral  ContextBias = "neutral"
)

// Keyword is one weighted profile term.
type Keyword struct {
	tokenize.Phrase
	Weight float64
}

// Profile is derived once per run and shared read-only.
type Profile struct {
	Category    Category
	Keywords    []Keyword
	Bias        ContextBias
	TotalWeight float64
}

// NewProfile classifies persona and derives the context bias from persona and
// job together. Both strings must contain non-whitespace text.
func NewProfile(persona, job string) (*Profile, error) {
	if strings.TrimSpace(persona) == "" {
		return nil, errors.Join(ErrInvalidInput, errors.New("persona is empty"))
	}
	if strings.TrimSpace(job) == "" {
		return nil, errors.Join(ErrInvalidInput, errors.New("job to be done is empty"))
	}

	cat := Classify(persona)
	kws := keywordTables[cat]
	total := 0.0
	for _, k := range kws {
		total += k.Weight
	}

	return &Profile{
		Category:    cat,
		Keywords:    kws,
		Bias:        BiasOf(tokenize.NewIndex(persona + "\n" + job)),
		TotalWeight: total,
	}, nil
}

// Classify picks the category whose indicators occur most often in persona.
// Zero matches or a tie at the top yield Generic.
func Classify(persona string) Category {
	x := tokenize.NewIndex(persona)

	best, bestCount, tied := Generic, 0, false
	for _, c := range Categories {
		n := x.CountPresent(indicators[c])
		switch {
		case n > bestCount:
			best, bestCount, tied = c, n, false
		case n == bestCount && n > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return Generic
	}
	return best
}

// VocabularyHits counts the academic and business phrases present in x.
func VocabularyHits(x *tokenize.Index) (academic, business int) {
	return x.CountPresent(academicVocabulary), x.CountPresent(businessVocabulary)
}

// BiasOf returns the dominant vocabulary family of x.
func BiasOf(x *tokenize.Index) ContextBias {
	a, b := VocabularyHits(x)
	switch {
	case a > b:
		return Academic
	case b > a:
		return Business
	}
	return Neutral
}
