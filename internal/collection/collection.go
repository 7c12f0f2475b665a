// Package collection reads the input configuration of a document
// collection: which documents to analyse, for whom and to what end.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// InputFileName is the configuration file that marks a collection
	// directory.
	InputFileName = "challenge1b_input.json"

	// DocumentDir holds the documents of a collection.
	DocumentDir = "PDFs"
)

// Document is one listed input document.
type Document struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
}

// UnmarshalJSON accepts a bare file name or a {"filename", "title"} object.
func (d *Document) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*d = Document{Filename: name}
		return nil
	}
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("document entry: %w", err)
	}
	*d = Document(p)
	return nil
}

// unmarshalText decodes a free-text field given either as a string or as an
// object holding the text under one of keys.
func unmarshalText(data []byte, keys ...string) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%s: %w", k, err)
		}
		return s, nil
	}
	return "", fmt.Errorf("expected a string or an object with one of %v", keys)
}

// ChallengeInfo is optional descriptive metadata.
type ChallengeInfo struct {
	ChallengeID  string `json:"challenge_id,omitempty"`
	TestCaseName string `json:"test_case_name,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Config is a loaded collection.
type Config struct {
	Dir           string // Directory holding InputFileName
	Name          string // Base name of Dir
	ChallengeInfo *ChallengeInfo
	Documents     []Document
	Persona       string
	Job           string
}

type rawConfig struct {
	ChallengeInfo *ChallengeInfo  `json:"challenge_info"`
	Documents     []Document      `json:"documents"`
	Persona       json.RawMessage `json:"persona"`
	Job           json.RawMessage `json:"job_to_be_done"`
}

// Discover returns every InputFileName below root, sorted by path.
func Discover(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == InputFileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering collections in %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	cfg.Name = NameOf(path)
	return cfg, nil
}

// NameOf is the collection name of the configuration at path: the base name
// of its directory.
func NameOf(path string) string {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := &Config{ChallengeInfo: raw.ChallengeInfo, Documents: raw.Documents}
	if len(raw.Persona) > 0 {
		p, err := unmarshalText(raw.Persona, "role", "description", "name")
		if err != nil {
			return nil, fmt.Errorf("persona: %w", err)
		}
		cfg.Persona = p
	}
	if len(raw.Job) > 0 {
		j, err := unmarshalText(raw.Job, "task", "description")
		if err != nil {
			return nil, fmt.Errorf("job_to_be_done: %w", err)
		}
		cfg.Job = j
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the document list. Blank persona and job text is rejected
// later by the analyser.
func (c *Config) Validate() error {
	if len(c.Documents) == 0 {
		return errors.New("no documents listed")
	}
	seen := make(map[string]bool, len(c.Documents))
	for i, d := range c.Documents {
		name := strings.TrimSpace(d.Filename)
		if name == "" {
			return fmt.Errorf("document %d has no filename", i)
		}
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			return fmt.Errorf("document %q escapes the collection directory", name)
		}
		if seen[name] {
			return fmt.Errorf("document %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

// DocumentNames returns the listed file names in order.
func (c *Config) DocumentNames() []string {
	out := make([]string, len(c.Documents))
	for i, d := range c.Documents {
		out[i] = d.Filename
	}
	return out
}

// DocumentPath resolves d under DocumentDir, falling back to the collection
// directory itself when the file is not there.
func (c *Config) DocumentPath(d Document) string {
	name := filepath.FromSlash(d.Filename)
	primary := filepath.Join(c.Dir, DocumentDir, name)
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	flat := filepath.Join(c.Dir, name)
	if _, err := os.Stat(flat); err == nil {
		return flat
	}
	return primary
}
