package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objectInput = `{
  "challenge_info": {"challenge_id": "round_1b_002", "test_case_name": "travel_planner", "description": "France Travel"},
  "documents": [
    {"filename": "South of France - Cities.pdf", "title": "South of France - Cities"},
    {"filename": "South of France - Cuisine.pdf", "title": "South of France - Cuisine"}
  ],
  "persona": {"role": "Travel Planner"},
  "job_to_be_done": {"task": "Plan a trip of 4 days for a group of 10 college friends."}
}`

const stringInput = `{
  "documents": ["a.pdf", "b.pdf"],
  "persona": "Investment Analyst",
  "job_to_be_done": "Analyze revenue trends"
}`

func TestParse_ObjectForm(t *testing.T) {
	cfg, err := Parse([]byte(objectInput))
	require.NoError(t, err)

	assert.Equal(t, "Travel Planner", cfg.Persona)
	assert.Equal(t, "Plan a trip of 4 days for a group of 10 college friends.", cfg.Job)
	require.NotNil(t, cfg.ChallengeInfo)
	assert.Equal(t, "round_1b_002", cfg.ChallengeInfo.ChallengeID)
	assert.Equal(t, []string{"South of France - Cities.pdf", "South of France - Cuisine.pdf"}, cfg.DocumentNames())
	assert.Equal(t, "South of France - Cuisine", cfg.Documents[1].Title)
}

func TestParse_StringForm(t *testing.T) {
	cfg, err := Parse([]byte(stringInput))
	require.NoError(t, err)

	assert.Equal(t, "Investment Analyst", cfg.Persona)
	assert.Equal(t, "Analyze revenue trends", cfg.Job)
	assert.Nil(t, cfg.ChallengeInfo)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, cfg.DocumentNames())
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":      `{"documents": [`,
		"no documents":   `{"documents": [], "persona": "x", "job_to_be_done": "y"}`,
		"empty filename": `{"documents": [""], "persona": "x", "job_to_be_done": "y"}`,
		"escaping path":  `{"documents": ["../secret.pdf"], "persona": "x", "job_to_be_done": "y"}`,
		"duplicate":      `{"documents": ["a.pdf", "a.pdf"], "persona": "x", "job_to_be_done": "y"}`,
		"bad persona":    `{"documents": ["a.pdf"], "persona": {"age": 3}, "job_to_be_done": "y"}`,
		"bad job":        `{"documents": ["a.pdf"], "persona": "x", "job_to_be_done": 42}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestParse_BlankPersonaIsNotRejectedHere(t *testing.T) {
	cfg, err := Parse([]byte(`{"documents": ["a.pdf"], "persona": "  ", "job_to_be_done": {"task": ""}}`))
	require.NoError(t, err)
	assert.Equal(t, "  ", cfg.Persona)
	assert.Empty(t, cfg.Job)
}

func TestDiscoverAndLoad(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"Collection 2", "Collection 1", "Collection 1/PDFs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "Collection 1", InputFileName), []byte(objectInput), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Collection 2", InputFileName), []byte(stringInput), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Collection 1", "notes.json"), []byte(`{}`), 0o644))

	found, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, filepath.Join(root, "Collection 1", InputFileName), found[0])

	cfg, err := Load(found[0])
	require.NoError(t, err)
	assert.Equal(t, "Collection 1", cfg.Name)
	assert.Equal(t, filepath.Join(root, "Collection 1"), cfg.Dir)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDocumentPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DocumentDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DocumentDir, "in-pdfs.pdf"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.txt"), nil, 0o644))

	cfg := &Config{Dir: dir}
	assert.Equal(t, filepath.Join(dir, DocumentDir, "in-pdfs.pdf"), cfg.DocumentPath(Document{Filename: "in-pdfs.pdf"}))
	assert.Equal(t, filepath.Join(dir, "flat.txt"), cfg.DocumentPath(Document{Filename: "flat.txt"}))
	assert.Equal(t, filepath.Join(dir, DocumentDir, "gone.pdf"), cfg.DocumentPath(Document{Filename: "gone.pdf"}))
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "Collection 1", NameOf(filepath.Join("input", "Collection 1", InputFileName)))
	assert.NotEmpty(t, NameOf(InputFileName))
}
