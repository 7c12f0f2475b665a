package persona

import (
	"testing"

	"github.com/dgallion1/docrank/internal/tokenize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		persona string
		want    Category
	}{
		{"PhD Researcher in Computational Biology", Researcher},
		{"Undergraduate Chemistry Student", Student},
		{"Investment Analyst", Analyst},
		{"Travel Planner", Manager},
		{"Senior Software Engineer", Developer},
		{"HR professional", Consultant},
		{"Food Contractor", Consultant},
		{"Curious reader", Generic},
		{"Executive Financial Officer", Generic},
		{"", Generic},
	}

	for _, tt := range tests {
		t.Run(tt.persona, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.persona))
		})
	}
}

func TestNewProfile_RejectsBlankInput(t *testing.T) {
	t.Parallel()

	_, err := NewProfile("   ", "Summarise findings")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewProfile("Investment Analyst", "\n\t")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewProfile_Researcher(t *testing.T) {
	t.Parallel()

	p, err := NewProfile(
		"PhD Researcher in Computational Biology",
		"Prepare comprehensive literature review focusing on methodologies and benchmarks",
	)
	require.NoError(t, err)

	assert.Equal(t, Researcher, p.Category)
	assert.Equal(t, Academic, p.Bias)
	assert.NotEmpty(t, p.Keywords)

	sum := 0.0
	for _, k := range p.Keywords {
		sum += k.Weight
	}
	assert.InDelta(t, sum, p.TotalWeight, 1e-9)
}

func TestNewProfile_BusinessBias(t *testing.T) {
	t.Parallel()

	p, err := NewProfile("Investment Analyst", "Analyze revenue trends and market positioning strategies")
	require.NoError(t, err)

	assert.Equal(t, Analyst, p.Category)
	assert.Equal(t, Business, p.Bias)
}

func TestNewProfile_NeutralBias(t *testing.T) {
	t.Parallel()

	p, err := NewProfile("Travel Planner", "Plan a trip of 4 days for a group of 10 college friends")
	require.NoError(t, err)

	assert.Equal(t, Manager, p.Category)
	assert.Equal(t, Neutral, p.Bias)
}

func TestBiasOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Academic, BiasOf(tokenize.NewIndex("This study reports experiment results and a literature review.")))
	assert.Equal(t, Business, BiasOf(tokenize.NewIndex("Quarterly revenue and profit beat market expectations.")))
	assert.Equal(t, Neutral, BiasOf(tokenize.NewIndex("We walked along the beach at sunset.")))
}

func TestKeywordTablesCoverEveryCategory(t *testing.T) {
	t.Parallel()

	for _, c := range append(Categories, Generic) {
		kws := keywordTables[c]
		require.NotEmpty(t, kws, c)
		for _, k := range kws {
			assert.NotEmpty(t, k.Terms, "%s keyword %q has no terms", c, k.Text)
			assert.Positive(t, k.Weight)
		}
	}
}
