package entity

import (
	"github.com/google/uuid"

	"github.com/chemtrack/sds-extractor/constants"
)

// SourceSpan locates a field's matched text inside the document.
type SourceSpan struct {
	Page int         `json:"page"`
	Box  BoundingBox `json:"box"`
}

// Candidate is one competing match for a field. All candidates are retained
// when a field resolves CONFLICTING so a reviewer can pick.
type Candidate struct {
	Raw        string      `json:"raw"`
	RuleID     string      `json:"rule_id"`
	Confidence float32     `json:"confidence"`
	Span       *SourceSpan `json:"span,omitempty"`
}

// FieldExtraction is the per-field output of the extractor chain after
// canonicalization.
type FieldExtraction struct {
	Field      string                    `json:"field"`
	Raw        string                    `json:"raw"`
	Normalized string                    `json:"normalized"`
	Confidence float32                   `json:"confidence"`
	State      constants.ResolutionState `json:"state"`
	RuleID     string                    `json:"rule_id,omitempty"`
	Span       *SourceSpan               `json:"source_span,omitempty"`
	Flags      []constants.Flag          `json:"flags,omitempty"`
	Candidates []Candidate               `json:"candidates,omitempty"`
}

// HasFlag reports whether the extraction carries the given flag.
func (f *FieldExtraction) HasFlag(flag constants.Flag) bool {
	for _, g := range f.Flags {
		if g == flag {
			return true
		}
	}
	return false
}

// Record is the engine's fixed output shape. Its field set is exactly the
// producing template's field set: unresolved fields are present with
// UNRESOLVED state, never omitted.
type Record struct {
	DocumentID        uuid.UUID                  `json:"document_id"`
	SourcePath        string                     `json:"source_path,omitempty"`
	TemplateVersion   string                     `json:"template_version"`
	Fields            map[string]FieldExtraction `json:"fields"`
	OverallConfidence float32                    `json:"overall_confidence"`
	NeedsReview       bool                       `json:"needs_review"`
}

// Outcome pairs one submitted document with its result: exactly one of
// Record or Err is set. Batch output preserves submission order.
type Outcome struct {
	DocumentID uuid.UUID `json:"document_id"`
	SourcePath string    `json:"source_path"`
	Record     *Record   `json:"record,omitempty"`
	Err        error     `json:"-"`
	ErrMessage string    `json:"error,omitempty"`
}
