package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/dgallion1/docrank/internal/doctree"
)

// DocumentStatus is the outcome of one input document.
type DocumentStatus string

const (
	StatusPending      DocumentStatus = "pending"
	StatusParsed       DocumentStatus = "parsed"
	StatusAnalyzed     DocumentStatus = "analyzed"
	StatusSkippedEmpty DocumentStatus = "skipped_empty"
	StatusFailed       DocumentStatus = "failed"
	StatusMissing      DocumentStatus = "missing"
)

// DocumentReport tracks what happened to a single input document. Loader and
// Analyzer goroutines update it concurrently.
type DocumentReport struct {
	mu sync.Mutex

	DocID    string
	Index    int
	Path     string
	Status   DocumentStatus
	Phase    string
	Language string

	ContentHash string
	Pages       int
	Blocks      int
	Sections    int

	errors []string
}

// NewDocumentReport starts a pending report for the document at index.
func NewDocumentReport(docID string, index int, path string) *DocumentReport {
	return &DocumentReport{
		DocID:  docID,
		Index:  index,
		Path:   path,
		Status: StatusPending,
	}
}

func reportFor(doc *doctree.Document) *DocumentReport {
	r := NewDocumentReport(doc.ID, doc.Index, "")
	r.SetParsed(doc, "")
	return r
}

// SetStatus updates status and phase atomically.
func (r *DocumentReport) SetStatus(status DocumentStatus, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
}

// SetParsed records a successful extraction.
func (r *DocumentReport) SetParsed(doc *doctree.Document, contentHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = StatusParsed
	r.Phase = "parsing"
	r.Pages = len(doc.Pages)
	r.Language = doc.Language
	if contentHash != "" {
		r.ContentHash = contentHash
	}
}

// SetCounts records the segmentation outcome.
func (r *DocumentReport) SetCounts(blocks, sections int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Blocks = blocks
	r.Sections = sections
}

// AddError records an error.
func (r *DocumentReport) AddError(err string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

// ReportSnapshot is a read-only, JSON-safe copy of a report.
type ReportSnapshot struct {
	DocID       string         `json:"doc_id" yaml:"doc_id"`
	Index       int            `json:"index" yaml:"index"`
	Path        string         `json:"path,omitempty" yaml:"path,omitempty"`
	Status      DocumentStatus `json:"status" yaml:"status"`
	Phase       string         `json:"phase" yaml:"phase"`
	Language    string         `json:"language,omitempty" yaml:"language,omitempty"`
	ContentHash string         `json:"content_hash,omitempty" yaml:"content_hash,omitempty"`
	Pages       int            `json:"pages" yaml:"pages"`
	Blocks      int            `json:"blocks" yaml:"blocks"`
	Sections    int            `json:"sections" yaml:"sections"`
	Errors      []string       `json:"errors" yaml:"errors"`
}

// Snapshot returns a copy of the report state.
func (r *DocumentReport) Snapshot() ReportSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := append([]string{}, r.errors...)
	return ReportSnapshot{
		DocID:       r.DocID,
		Index:       r.Index,
		Path:        r.Path,
		Status:      r.Status,
		Phase:       r.Phase,
		Language:    r.Language,
		ContentHash: r.ContentHash,
		Pages:       r.Pages,
		Blocks:      r.Blocks,
		Sections:    r.Sections,
		Errors:      errs,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
