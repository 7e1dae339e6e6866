package assemble

import (
	"testing"

	"github.com/google/uuid"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
)

func twoFieldTemplate() *template.Template {
	return &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{
			{Name: "a", Weight: 1.0},
			{Name: "b", Weight: 0.5},
			{Name: "note", Weight: 0}, // extracted but excluded from the aggregate
		},
	}
}

func TestAssembleWeightedAggregate(t *testing.T) {
	a := NewAssembler(0.7, nil)
	tpl := twoFieldTemplate()
	fields := map[string]entity.FieldExtraction{
		"a":    {Field: "a", State: constants.StateResolved, Confidence: 0.9},
		"b":    {Field: "b", State: constants.StateResolved, Confidence: 0.6},
		"note": {Field: "note", State: constants.StateResolved, Confidence: 0.1},
	}

	rec := a.Assemble(uuid.Nil, "doc.pdf", tpl, fields)

	// (1.0*0.9 + 0.5*0.6) / 1.5 = 0.8; the zero-weight field contributes
	// zero weight, not zero confidence
	if rec.OverallConfidence < 0.79 || rec.OverallConfidence > 0.81 {
		t.Errorf("overall = %.3f, want 0.8", rec.OverallConfidence)
	}
	if rec.NeedsReview {
		t.Error("all resolved above floor: no review expected")
	}
	if rec.TemplateVersion != "t@1" {
		t.Errorf("template version = %q", rec.TemplateVersion)
	}
}

func TestAssembleFieldSetMatchesTemplate(t *testing.T) {
	a := NewAssembler(0.0, nil)
	tpl := twoFieldTemplate()

	// the extractor produced nothing at all
	rec := a.Assemble(uuid.Nil, "doc.pdf", tpl, nil)

	if len(rec.Fields) != len(tpl.Fields) {
		t.Fatalf("fields = %d, want exactly the template's %d", len(rec.Fields), len(tpl.Fields))
	}
	for _, fd := range tpl.Fields {
		fe, ok := rec.Fields[fd.Name]
		if !ok {
			t.Fatalf("field %q missing; unresolved fields are present, never omitted", fd.Name)
		}
		if fe.State != constants.StateUnresolved {
			t.Errorf("field %q state = %q, want UNRESOLVED", fd.Name, fe.State)
		}
	}
}

func TestAssembleReviewTriggers(t *testing.T) {
	tpl := &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{Name: "a", Weight: 1.0}},
	}
	cases := []struct {
		name   string
		floor  float32
		fe     entity.FieldExtraction
		review bool
	}{
		{"clean", 0.5, entity.FieldExtraction{Field: "a", State: constants.StateResolved, Confidence: 0.9}, false},
		{"below floor", 0.95, entity.FieldExtraction{Field: "a", State: constants.StateResolved, Confidence: 0.9}, true},
		{"conflicting", 0.0, entity.FieldExtraction{Field: "a", State: constants.StateConflicting}, true},
		{"unresolved", 0.0, entity.FieldExtraction{Field: "a", State: constants.StateUnresolved}, true},
		{"invalid checksum", 0.5, entity.FieldExtraction{Field: "a", State: constants.StateResolved, Confidence: 0.9,
			Flags: []constants.Flag{constants.FlagInvalidChecksum}}, true},
		{"ambiguous date", 0.5, entity.FieldExtraction{Field: "a", State: constants.StateResolved, Confidence: 0.9,
			Flags: []constants.Flag{constants.FlagAmbiguousDate}}, true},
		{"uncoded alone", 0.5, entity.FieldExtraction{Field: "a", State: constants.StateResolved, Confidence: 0.9,
			Flags: []constants.Flag{constants.FlagUncoded}}, false},
	}
	for _, c := range cases {
		a := NewAssembler(c.floor, nil)
		rec := a.Assemble(uuid.Nil, "doc.pdf", tpl, map[string]entity.FieldExtraction{"a": c.fe})
		if rec.NeedsReview != c.review {
			t.Errorf("%s: NeedsReview = %v, want %v", c.name, rec.NeedsReview, c.review)
		}
	}
}

func TestAssembleAllZeroWeights(t *testing.T) {
	a := NewAssembler(0.0, nil)
	tpl := &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{Name: "a", Weight: 0}},
	}
	rec := a.Assemble(uuid.Nil, "doc.pdf", tpl, map[string]entity.FieldExtraction{
		"a": {Field: "a", State: constants.StateResolved, Confidence: 0.9},
	})
	if rec.OverallConfidence != 0 {
		t.Errorf("overall = %v, want 0 when no field carries weight", rec.OverallConfidence)
	}
}
