package header

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultMaxLength)

	tests := []struct {
		name     string
		text     string
		header   bool
		strength Strength
		rule     string
	}{
		{name: "numbered integer", text: "1. Introduction", header: true, strength: StrengthStrong, rule: "numbered"},
		{name: "numbered outline", text: "2.1 Data Collection Procedures", header: true, strength: StrengthStrong, rule: "numbered"},
		{name: "numbered letter", text: "A. Appendix Tables", header: true, strength: StrengthStrong, rule: "numbered"},
		{name: "numbered roman", text: "IV. Experimental Setup", header: true, strength: StrengthStrong, rule: "numbered"},
		{name: "chapter prefix", text: "Chapter 3: Market Entry", header: true, strength: StrengthStrong, rule: "numbered"},
		{name: "numbered wins over caps", text: "3 RESULTS", header: true, strength: StrengthStrong, rule: "numbered"},
		{name: "all caps", text: "COASTAL ADVENTURES", header: true, strength: StrengthWeak, rule: "all_caps"},
		{name: "all caps unicode", text: "ÉTUDE DE CAS", header: true, strength: StrengthWeak, rule: "all_caps"},
		{name: "keyword academic", text: "Methodology", header: true, strength: StrengthMedium, rule: "keyword"},
		{name: "keyword trailing colon", text: "Results:", header: true, strength: StrengthMedium, rule: "keyword"},
		{name: "keyword business", text: "executive summary", header: true, strength: StrengthMedium, rule: "keyword"},
		{name: "keyword multi-space", text: "Financial \n Highlights", header: true, strength: StrengthMedium, rule: "keyword"},
		{name: "acknowledgements", text: "Acknowledgements", header: true, strength: StrengthMedium, rule: "keyword"},
		{name: "body sentence", text: "The results were collected over three months.", header: false},
		{name: "keyword prefix only", text: "Results show a strong improvement in accuracy", header: false},
		{name: "number without title", text: "2021 revenue", header: false},
		{name: "number then digit", text: "2. 5 million units", header: false},
		{name: "empty", text: "   ", header: false},
		{name: "cjk has no case", text: "方法論", header: false},
		{name: "two caps letters", text: "AB", header: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.Classify(tt.text)
			assert.Equal(t, tt.header, got.IsHeader)
			if tt.header {
				assert.Equal(t, tt.strength, got.Strength)
				assert.Equal(t, tt.rule, got.Rule)
			} else {
				assert.Equal(t, StrengthNone, got.Strength)
				assert.Empty(t, got.Rule)
			}
		})
	}
}

func TestClassify_LengthCapGuardsCapsParagraphs(t *testing.T) {
	t.Parallel()

	caps := strings.Repeat("ALL CAPS BODY ", 8)
	assert.False(t, NewClassifier(DefaultMaxLength).Classify(caps).IsHeader)
	assert.True(t, NewClassifier(200).Classify(caps).IsHeader)
}

func TestClassify_NumberedTitleWordLimit(t *testing.T) {
	t.Parallel()

	long := "1. " + strings.Repeat("word ", maxTitleWords+1)
	assert.False(t, IsNumbered(Normalize(long)))
	assert.True(t, IsNumbered(Normalize("1. "+strings.Repeat("word ", maxTitleWords))))
}

func TestClassify_Idempotent(t *testing.T) {
	t.Parallel()

	c := NewClassifier(0)
	for _, text := range []string{"1. Introduction", "MARKET ANALYSIS", "Conclusion.", "plain body text here"} {
		first := c.Classify(text)
		for range 3 {
			assert.Equal(t, first, c.Classify(text), text)
		}
	}
}

func TestWithRules_FirstMatchWins(t *testing.T) {
	t.Parallel()

	always := Rule{Name: "always", Strength: StrengthWeak, Match: func(string) bool { return true }}
	never := Rule{Name: "never", Strength: StrengthStrong, Match: func(string) bool { return false }}

	c := WithRules(0, never, always)
	got := c.Classify("anything at all")
	assert.True(t, got.IsHeader)
	assert.Equal(t, "always", got.Rule)
}

func TestStrengthString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "strong", StrengthStrong.String())
	assert.Equal(t, "medium", StrengthMedium.String())
	assert.Equal(t, "weak", StrengthWeak.String())
	assert.Equal(t, "none", StrengthNone.String())
}
