package persona

import "github.com/dgallion1/docrank/internal/tokenize"

// indicators are the persona words that vote for a category.
var indicators = map[Category][]tokenize.Phrase{
	Researcher: tokenize.Phrases("researcher", "scientist", "phd", "academic", "postdoc", "professor", "investigator"),
	Student:    tokenize.Phrases("student", "undergraduate", "graduate", "learner", "pupil", "trainee"),
	Analyst:    tokenize.Phrases("analyst", "investment", "financial", "business analyst", "economist", "auditor"),
	Manager:    tokenize.Phrases("manager", "director", "executive", "leader", "planner", "coordinator", "supervisor"),
	Developer:  tokenize.Phrases("developer", "engineer", "programmer", "technical", "architect", "devops"),
	Consultant: tokenize.Phrases("consultant", "advisor", "adviser", "specialist", "contractor", "professional"),
}

type term struct {
	text   string
	weight float64
}

func weighted(terms []term) []Keyword {
	out := make([]Keyword, len(terms))
	for i, t := range terms {
		out[i] = Keyword{Phrase: tokenize.NewPhrase(t.text), Weight: t.weight}
	}
	return out
}

// keywordTables holds the weighted focus terms of each category.
var keywordTables = map[Category][]Keyword{
	Researcher: weighted([]term{
		{"methodology", 3}, {"results", 2}, {"analysis", 2}, {"experiment", 2},
		{"data", 1.5}, {"dataset", 1.5}, {"benchmark", 2}, {"study", 1},
		{"research", 1}, {"findings", 2}, {"hypothesis", 1.5}, {"literature", 1.5},
	}),
	Student: weighted([]term{
		{"definition", 2}, {"example", 2}, {"concept", 2}, {"theory", 1.5},
		{"principle", 1.5}, {"basics", 1}, {"fundamentals", 1.5},
		{"explanation", 1.5}, {"overview", 1}, {"summary", 1}, {"exercise", 1},
		{"key", 0.5},
	}),
	Analyst: weighted([]term{
		{"trend", 2}, {"performance", 2}, {"metric", 1.5}, {"revenue", 2},
		{"growth", 1.5}, {"market", 1.5}, {"financial", 1.5}, {"investment", 1.5},
		{"risk", 1.5}, {"return", 1}, {"forecast", 1}, {"margin", 1},
	}),
	Manager: weighted([]term{
		{"strategy", 2}, {"implementation", 1.5}, {"team", 1.5}, {"project", 1.5},
		{"planning", 2}, {"execution", 1.5}, {"leadership", 1}, {"management", 1},
		{"objectives", 1.5}, {"goals", 1.5}, {"schedule", 1}, {"budget", 1},
	}),
	Developer: weighted([]term{
		{"code", 2}, {"implementation", 1.5}, {"algorithm", 2}, {"technical", 1},
		{"system", 1}, {"architecture", 2}, {"framework", 1.5}, {"api", 2},
		{"database", 1.5}, {"optimization", 1.5}, {"performance", 1}, {"testing", 1},
	}),
	Consultant: weighted([]term{
		{"recommendation", 2}, {"solution", 2}, {"best practice", 2},
		{"assessment", 1.5}, {"evaluation", 1.5}, {"improvement", 1.5},
		{"process", 1}, {"efficiency", 1.5}, {"optimization", 1}, {"compliance", 1},
		{"requirements", 1}, {"guide", 1},
	}),
	Generic: weighted([]term{
		{"overview", 1}, {"summary", 1}, {"guide", 1}, {"tips", 1}, {"important", 1},
		{"key", 1}, {"recommended", 1}, {"essential", 1},
	}),
}

// academicVocabulary and businessVocabulary drive both the profile's context
// bias and the per-text context bonus.
var (
	academicVocabulary = tokenize.Phrases(
		"abstract", "introduction", "methodology", "results", "discussion",
		"conclusion", "references", "literature review", "research", "study",
		"academic", "paper", "thesis", "experiment", "hypothesis", "journal",
		"citation", "phd", "university", "dataset",
	)
	businessVocabulary = tokenize.Phrases(
		"executive summary", "financial", "revenue", "profit", "market",
		"strategy", "competitive", "business", "investment", "sales",
		"customer", "earnings", "quarter", "stakeholder", "roi",
		"pricing", "portfolio", "shareholder", "operations", "growth",
	)
)
