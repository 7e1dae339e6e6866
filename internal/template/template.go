// Package template holds the immutable, versioned, data-only definitions of
// which fields the engine extracts and how. A template is pure data: adding
// a custom field is a new field definition in a new template version, never
// an engine change.
package template

import (
	"fmt"
	"regexp"

	"github.com/chemtrack/sds-extractor/constants"
)

// Rule is one extraction rule in a field's ordered rule list. Exactly one of
// the variant-specific members is meaningful, selected by Type.
type Rule struct {
	ID   string             `json:"id"`
	Type constants.RuleType `json:"type"`

	// pattern rules: RE2 expression over normalized text; the first capture
	// group is the value, or the whole match when there is no group.
	Pattern string `json:"pattern,omitempty"`

	// proximity rules: the answer is expected within Window tokens after
	// Keyword. Window 0 uses the configured default.
	Keyword string `json:"keyword,omitempty"`
	Window  int    `json:"window,omitempty"`

	// table rules: name of a controlled vocabulary table.
	Table string `json:"table,omitempty"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern of a pattern rule.
func (r *Rule) Regexp() *regexp.Regexp {
	return r.re
}

// FieldDef declares one extractable field.
type FieldDef struct {
	Name string `json:"name"`
	// Section is the expected canonical section slug, a bare SDS section
	// number, or "any".
	Section string `json:"section"`
	// Weight is this field's share of the record's aggregate confidence.
	// Zero-weight fields are extracted but do not move the aggregate.
	Weight float32 `json:"weight"`
	// Vocabulary names the canonicalization target: "cas", "hazard-codes",
	// "precautionary-codes", "date", or empty for plain text hygiene.
	Vocabulary string `json:"vocabulary,omitempty"`
	Rules      []Rule `json:"rules"`

	section constants.Section
}

// ExpectedSection returns the resolved canonical section of the field.
func (f *FieldDef) ExpectedSection() constants.Section {
	return f.section
}

// Template is a named, versioned field set. Immutable after registration.
type Template struct {
	Name    string     `json:"name"`
	Version int        `json:"version"`
	Fields  []FieldDef `json:"fields"`
}

// VersionID is the template's provenance identifier, recorded on every
// record it produces.
func (t *Template) VersionID() string {
	return fmt.Sprintf("%s@%d", t.Name, t.Version)
}

// Field returns the definition for a field name, if present.
func (t *Template) Field(name string) (*FieldDef, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// Normalization target names accepted in field definitions.
const (
	VocabCAS           = "cas"
	VocabHazardCodes   = "hazard-codes"
	VocabPrecautionary = "precautionary-codes"
	VocabDate          = "date"
)

var knownVocabularies = map[string]struct{}{
	VocabCAS:           {},
	VocabHazardCodes:   {},
	VocabPrecautionary: {},
	VocabDate:          {},
}
