// Package export renders batch outcomes to spreadsheet formats. Adapters
// here are strictly downstream consumers of the record schema; they never
// feed anything back into the engine.
package export

import (
	"fmt"
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
)

// Header returns the column names for a template: document identity first,
// then one column per template field in definition order, then the record
// verdict columns.
func Header(tpl *template.Template) []string {
	cols := []string{"Document", "Document ID", "Template"}
	for i := range tpl.Fields {
		cols = append(cols, fieldTitle(tpl.Fields[i].Name))
	}
	return append(cols, "Overall Confidence", "Needs Review", "Error")
}

// Row flattens one outcome into cells aligned with Header. Failed documents
// keep their identity cells and carry the error in the last column.
func Row(tpl *template.Template, out entity.Outcome) []string {
	cells := []string{out.SourcePath, out.DocumentID.String(), ""}
	if out.Record == nil {
		for range tpl.Fields {
			cells = append(cells, "")
		}
		return append(cells, "", "", out.ErrMessage)
	}

	rec := out.Record
	cells[2] = rec.TemplateVersion
	for i := range tpl.Fields {
		cells = append(cells, fieldCell(rec.Fields[tpl.Fields[i].Name]))
	}
	cells = append(cells,
		fmt.Sprintf("%.2f", rec.OverallConfidence),
		fmt.Sprintf("%t", rec.NeedsReview),
		"")
	return cells
}

// fieldCell picks the display value for one extraction. Conflicting fields
// show every candidate so a reviewer sees the disagreement in the sheet.
func fieldCell(fe entity.FieldExtraction) string {
	switch fe.State {
	case constants.StateConflicting:
		vals := make([]string, 0, len(fe.Candidates))
		for _, c := range fe.Candidates {
			vals = append(vals, c.Raw)
		}
		return "conflicting: " + strings.Join(vals, " | ")
	case constants.StateUnresolved:
		return ""
	default:
		if fe.Normalized != "" {
			return fe.Normalized
		}
		return fe.Raw
	}
}

func fieldTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "cas" || w == "un" {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
