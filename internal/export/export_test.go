package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
)

func exportTemplate() *template.Template {
	return &template.Template{
		Name: "t", Version: 1,
		Fields: []template.FieldDef{
			{Name: "cas_number", Weight: 1},
			{Name: "product_name", Weight: 1},
		},
	}
}

func sampleOutcomes() []entity.Outcome {
	rec := &entity.Record{
		DocumentID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte("a")),
		SourcePath:      "a.pdf",
		TemplateVersion: "t@1",
		Fields: map[string]entity.FieldExtraction{
			"cas_number": {Field: "cas_number", Raw: "67-64-1", Normalized: "67-64-1",
				State: constants.StateResolved, Confidence: 0.9},
			"product_name": {Field: "product_name", State: constants.StateConflicting,
				Candidates: []entity.Candidate{{Raw: "Acetone"}, {Raw: "Propanone"}}},
		},
		OverallConfidence: 0.45,
		NeedsReview:       true,
	}
	return []entity.Outcome{
		{DocumentID: rec.DocumentID, SourcePath: "a.pdf", Record: rec},
		{DocumentID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("b")), SourcePath: "b.pdf",
			ErrMessage: "UNREADABLE_DOCUMENT: b.pdf: not a readable document container"},
	}
}

func TestHeaderFollowsTemplateOrder(t *testing.T) {
	h := Header(exportTemplate())
	want := []string{"Document", "Document ID", "Template", "CAS Number", "Product Name",
		"Overall Confidence", "Needs Review", "Error"}
	if len(h) != len(want) {
		t.Fatalf("header = %v", h)
	}
	for i := range want {
		if h[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, h[i], want[i])
		}
	}
}

func TestRowShapes(t *testing.T) {
	tpl := exportTemplate()
	outs := sampleOutcomes()

	ok := Row(tpl, outs[0])
	if len(ok) != len(Header(tpl)) {
		t.Fatalf("row width %d != header width %d", len(ok), len(Header(tpl)))
	}
	if ok[3] != "67-64-1" {
		t.Errorf("cas cell = %q", ok[3])
	}
	if !strings.Contains(ok[4], "conflicting:") || !strings.Contains(ok[4], "Acetone") || !strings.Contains(ok[4], "Propanone") {
		t.Errorf("conflicting cell = %q, want every candidate visible", ok[4])
	}
	if ok[6] != "true" {
		t.Errorf("needs review cell = %q", ok[6])
	}

	failed := Row(tpl, outs[1])
	if failed[len(failed)-1] == "" {
		t.Error("failed outcome must carry its error in the last column")
	}
	if failed[0] != "b.pdf" {
		t.Errorf("failed row keeps identity, got %q", failed[0])
	}
}

func TestRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := RecordsCSV(&buf, exportTemplate(), sampleOutcomes()); err != nil {
		t.Fatalf("RecordsCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 { // header + 2 outcomes
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1][3] != "67-64-1" {
		t.Errorf("cas cell = %q", rows[1][3])
	}
}

func TestRecordsXLSX(t *testing.T) {
	data, err := RecordsXLSX(exportTemplate(), sampleOutcomes(), nil)
	if err != nil {
		t.Fatalf("RecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Extractions", "A1")
	if err != nil || got != "Document" {
		t.Errorf("A1 = %q (%v), want header", got, err)
	}
	got, _ = f.GetCellValue("Extractions", "D2")
	if got != "67-64-1" {
		t.Errorf("D2 = %q, want CAS value", got)
	}
	got, _ = f.GetCellValue("Extractions", "A3")
	if got != "b.pdf" {
		t.Errorf("A3 = %q, want failed document listed", got)
	}
}
