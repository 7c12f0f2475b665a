// Package output shapes an analysis result into the published result
// document and serialises it.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dgallion1/docrank/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Format selects the serialisation.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// TimestampLayout formats processing_timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

type Metadata struct {
	InputDocuments      []string          `json:"input_documents" yaml:"input_documents"`
	Persona             string            `json:"persona" yaml:"persona"`
	JobToBeDone         string            `json:"job_to_be_done" yaml:"job_to_be_done"`
	ProcessingTimestamp string            `json:"processing_timestamp" yaml:"processing_timestamp"`
	PersonaCategory     string            `json:"persona_category" yaml:"persona_category"`
	ContextBias         string            `json:"context_bias" yaml:"context_bias"`
	DocumentLanguages   map[string]string `json:"document_languages,omitempty" yaml:"document_languages,omitempty"`
	Error               string            `json:"error,omitempty" yaml:"error,omitempty"`
}

type ExtractedSection struct {
	Document       string `json:"document" yaml:"document"`
	PageNumber     int    `json:"page_number" yaml:"page_number"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	ImportanceRank int    `json:"importance_rank" yaml:"importance_rank"`
}

type SubSection struct {
	Document       string  `json:"document" yaml:"document"`
	PageNumber     int     `json:"page_number" yaml:"page_number"`
	RefinedText    string  `json:"refined_text" yaml:"refined_text"`
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Document is the published result of one collection.
type Document struct {
	Metadata           Metadata           `json:"metadata" yaml:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections" yaml:"extracted_sections"`
	SubSectionAnalysis []SubSection       `json:"sub_section_analysis" yaml:"sub_section_analysis"`
}

// Input is the request side of a run as it should be echoed in metadata.
type Input struct {
	Documents []string
	Persona   string
	Job       string
}

// Build converts res into a result document stamped with now.
func Build(in Input, res *pipeline.Result, now time.Time) Document {
	doc := Document{
		Metadata: Metadata{
			InputDocuments:      append([]string{}, in.Documents...),
			Persona:             in.Persona,
			JobToBeDone:         in.Job,
			ProcessingTimestamp: now.Format(TimestampLayout),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(res.Sections)),
		SubSectionAnalysis: make([]SubSection, 0, len(res.Subsections)),
	}
	if res.Profile != nil {
		doc.Metadata.PersonaCategory = string(res.Profile.Category)
		doc.Metadata.ContextBias = string(res.Profile.Bias)
	}
	for _, r := range res.Reports {
		snap := r.Snapshot()
		if snap.Language == "" {
			continue
		}
		if doc.Metadata.DocumentLanguages == nil {
			doc.Metadata.DocumentLanguages = make(map[string]string)
		}
		doc.Metadata.DocumentLanguages[snap.DocID] = snap.Language
	}

	for _, rs := range res.Sections {
		doc.ExtractedSections = append(doc.ExtractedSections, ExtractedSection{
			Document:       rs.Section.DocID,
			PageNumber:     rs.Section.Page,
			SectionTitle:   rs.Section.Title,
			ImportanceRank: rs.ImportanceRank,
		})
	}
	for _, sp := range res.Subsections {
		doc.SubSectionAnalysis = append(doc.SubSectionAnalysis, SubSection{
			Document:       sp.DocID,
			PageNumber:     sp.Page,
			RefinedText:    sp.Text,
			RelevanceScore: sp.Score.Total,
		})
	}
	return doc
}

// Failed is the result document of a collection whose analysis failed. It
// echoes the request, carries the error and lists nothing.
func Failed(in Input, err error, now time.Time) Document {
	return Document{
		Metadata: Metadata{
			InputDocuments:      append([]string{}, in.Documents...),
			Persona:             in.Persona,
			JobToBeDone:         in.Job,
			ProcessingTimestamp: now.Format(TimestampLayout),
			Error:               err.Error(),
		},
		ExtractedSections:  []ExtractedSection{},
		SubSectionAnalysis: []SubSection{},
	}
}

// Write serialises doc. JSON is indented by two spaces and leaves HTML
// characters unescaped.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// FileName is the output file name for a collection: the collection name as
// given, with path separators replaced so the file stays in the output
// directory.
func FileName(collection string, format Format) string {
	name := strings.TrimSpace(fileNameReplacer.Replace(collection))
	if name == "" || name == "." || name == ".." {
		name = "collection"
	}
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}
	return name + "_output." + ext
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")
