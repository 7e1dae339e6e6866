package extract

import (
	"strings"
	"testing"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/segment"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

func block(page int, text string) entity.TextBlock {
	b := entity.TextBlock{Text: text, Page: page, Source: constants.SourceNative}
	for _, w := range strings.Fields(text) {
		b.Tokens = append(b.Tokens, entity.Token{
			Text: w, Page: page, Confidence: 1.0, Source: constants.SourceNative,
		})
	}
	return b
}

// compile registers the template so sections resolve and patterns compile.
func compile(t *testing.T, tpl *template.Template) *template.Template {
	t.Helper()
	reg, err := template.NewRegistry(vocab.Builtin(), nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if err := reg.Register(tpl); err != nil {
		t.Fatalf("register: %v", err)
	}
	return tpl
}

func label(blocks ...entity.TextBlock) *segment.Labeling {
	return segment.NewSegmenter(segment.Config{}, nil).Segment(blocks)
}

func newInterpreter() *Interpreter {
	return NewInterpreter(vocab.Builtin(), common.ExtractionConfig{}, nil)
}

func TestExtractFieldPatternInSection(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "cas_number", Section: "composition", Weight: 1,
			Rules: []template.Rule{{
				ID: "cas", Type: constants.RulePattern, Pattern: `CAS\s*No\.?\s*:?\s*(\d{2,7}-\d{2}-\d)`,
			}},
		}},
	})
	l := label(
		block(0, "SECTION 3: Composition/information on ingredients"),
		block(0, "CAS No: 67-64-1"),
	)

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateResolved {
		t.Fatalf("state = %q, want RESOLVED", fe.State)
	}
	if fe.Raw != "67-64-1" {
		t.Errorf("raw = %q, want capture group", fe.Raw)
	}
	if fe.RuleID != "cas" {
		t.Errorf("rule id = %q", fe.RuleID)
	}
	if fe.Span == nil || fe.Span.Page != 0 {
		t.Errorf("span = %+v, want page 0", fe.Span)
	}
}

func TestExtractFieldFallsBackToWholeDocument(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "cas_number", Section: "composition", Weight: 1,
			Rules: []template.Rule{{
				ID: "cas", Type: constants.RulePattern, Pattern: `(\d{2,7}-\d{2}-\d)`,
			}},
		}},
	})
	// no composition header anywhere: the CAS sits in an unclassified span
	l := label(block(0, "Acetone 67-64-1 technical grade"))

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateResolved || fe.Raw != "67-64-1" {
		t.Errorf("state=%q raw=%q, want whole-document fallback to resolve", fe.State, fe.Raw)
	}
}

func TestExtractFieldUnresolved(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "un_number", Section: "transport", Weight: 1,
			Rules: []template.Rule{{
				ID: "un", Type: constants.RulePattern, Pattern: `UN\s*(\d{4})`,
			}},
		}},
	})
	l := label(block(0, "nothing relevant here"))

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateUnresolved {
		t.Errorf("state = %q, want UNRESOLVED", fe.State)
	}
	if fe.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", fe.Confidence)
	}
}

func TestConfidenceOrderingAcrossTiers(t *testing.T) {
	in := newInterpreter()

	mkField := func(name string, rule template.Rule) *template.FieldDef {
		tpl := compile(t, &template.Template{
			Name: "t-" + name, Version: 1,
			Fields: []template.FieldDef{{Name: name, Section: "any", Weight: 1, Rules: []template.Rule{rule}}},
		})
		return &tpl.Fields[0]
	}

	l := label(block(0, "Supplier: Sigma-Aldrich Pty Ltd"))

	table := in.ExtractField(l, mkField("supplier_t", template.Rule{
		ID: "r-table", Type: constants.RuleTable, Table: "suppliers"}))
	pattern := in.ExtractField(l, mkField("supplier_p", template.Rule{
		ID: "r-pattern", Type: constants.RulePattern, Pattern: `supplier\s*:\s*([^\n]+)`}))
	proximity := in.ExtractField(l, mkField("supplier_x", template.Rule{
		ID: "r-prox", Type: constants.RuleProximity, Keyword: "supplier", Window: 4}))

	for _, fe := range []entity.FieldExtraction{table, pattern, proximity} {
		if fe.State != constants.StateResolved {
			t.Fatalf("%s not resolved", fe.Field)
		}
	}
	if table.Confidence < pattern.Confidence {
		t.Errorf("table %.2f < pattern %.2f, want table >= pattern", table.Confidence, pattern.Confidence)
	}
	if pattern.Confidence < proximity.Confidence {
		t.Errorf("pattern %.2f < proximity %.2f, want pattern >= proximity", pattern.Confidence, proximity.Confidence)
	}
}

func TestConflictingMatchesSurfaced(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "flash_point", Section: "any", Weight: 1,
			Rules: []template.Rule{
				{ID: "fp-a", Type: constants.RulePattern, Pattern: `flash\s*point\s*:\s*(-?\d+\s*C)`},
				{ID: "fp-b", Type: constants.RulePattern, Pattern: `closed\s*cup\s*:\s*(-?\d+\s*C)`},
			},
		}},
	})
	l := label(
		block(0, "Flash point: -20 C"),
		block(0, "closed cup: 35 C"),
	)

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateConflicting {
		t.Fatalf("state = %q, want CONFLICTING", fe.State)
	}
	if len(fe.Candidates) != 2 {
		t.Fatalf("candidates = %d, want both retained", len(fe.Candidates))
	}
	if fe.Raw != "" {
		t.Error("a conflicting field must not silently pick a value")
	}
}

func TestHigherTierDominatesConflict(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "supplier", Section: "any", Weight: 1,
			Rules: []template.Rule{
				{ID: "s-table", Type: constants.RuleTable, Table: "suppliers"},
				{ID: "s-prox", Type: constants.RuleProximity, Keyword: "supplier", Window: 3},
			},
		}},
	})
	l := label(block(0, "Supplier: Sigma-Aldrich Pty Ltd"))

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateResolved {
		t.Fatalf("state = %q; a lower-tier disagreement must not conflict a higher-tier match", fe.State)
	}
	if fe.RuleID != "s-table" {
		t.Errorf("rule id = %q, want the table rule to win", fe.RuleID)
	}
}

func TestAgreeingMatchesResolve(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "cas_number", Section: "any", Weight: 1,
			Rules: []template.Rule{
				{ID: "c-a", Type: constants.RulePattern, Pattern: `CAS\s*:\s*(\d{2,7}-\d{2}-\d)`},
				{ID: "c-b", Type: constants.RulePattern, Pattern: `(\d{2,7}-\d{2}-\d)`},
			},
		}},
	})
	l := label(block(0, "CAS: 67-64-1"))

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateResolved {
		t.Fatalf("state = %q; same value from two rules is agreement, not conflict", fe.State)
	}
	if fe.Raw != "67-64-1" {
		t.Errorf("raw = %q", fe.Raw)
	}
}

func TestOCRConfidencePropagates(t *testing.T) {
	tpl := compile(t, &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{{
			Name: "cas_number", Section: "any", Weight: 1,
			Rules: []template.Rule{{ID: "c", Type: constants.RulePattern, Pattern: `(\d{2,7}-\d{2}-\d)`}},
		}},
	})

	b := entity.TextBlock{Text: "CAS 67-64-1", Page: 0, Source: constants.SourceOCR}
	for _, w := range strings.Fields(b.Text) {
		b.Tokens = append(b.Tokens, entity.Token{Text: w, Confidence: 0.5, Source: constants.SourceOCR})
	}
	l := label(b)

	fe := newInterpreter().ExtractField(l, &tpl.Fields[0])
	if fe.State != constants.StateResolved {
		t.Fatalf("state = %q", fe.State)
	}
	// pattern prior 0.85 scaled by the 0.5 token confidence
	if fe.Confidence > 0.5 || fe.Confidence < 0.4 {
		t.Errorf("confidence = %.2f, want prior scaled by token confidence", fe.Confidence)
	}
}
