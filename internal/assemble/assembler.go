// Package assemble merges per-field extractions into a single Record with
// an aggregate confidence and a review flag. The assembler knows nothing
// about storage or presentation; it returns a value.
package assemble

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
)

type Assembler struct {
	// ConfidenceFloor is the overall confidence below which a record is
	// routed to manual review.
	ConfidenceFloor float32
	Logger          *slog.Logger
}

func NewAssembler(floor float32, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{ConfidenceFloor: floor, Logger: logger}
}

// reviewFlags are the canonicalization outcomes that force manual review.
// Uncoded statements degrade the normalized value but the raw text is
// intact, so they do not gate the record on their own.
var reviewFlags = []constants.Flag{
	constants.FlagInvalidChecksum,
	constants.FlagAmbiguousDate,
}

// Assemble builds the Record for one document. The field set is exactly
// the template's field set: unresolved fields are present with their
// Unresolved state, never omitted. Overall confidence is the weighted
// average over fields with non-zero weight.
func (a *Assembler) Assemble(docID uuid.UUID, sourcePath string, tpl *template.Template, fields map[string]entity.FieldExtraction) *entity.Record {
	rec := &entity.Record{
		DocumentID:      docID,
		SourcePath:      sourcePath,
		TemplateVersion: tpl.VersionID(),
		Fields:          make(map[string]entity.FieldExtraction, len(tpl.Fields)),
	}

	var weightSum, confSum float32
	needsReview := false
	for i := range tpl.Fields {
		fd := &tpl.Fields[i]
		fe, ok := fields[fd.Name]
		if !ok {
			fe = entity.FieldExtraction{Field: fd.Name, State: constants.StateUnresolved}
		}
		rec.Fields[fd.Name] = fe

		if fd.Weight > 0 {
			weightSum += fd.Weight
			confSum += fd.Weight * fe.Confidence
		}
		if fe.State != constants.StateResolved {
			needsReview = true
		}
		for _, flag := range reviewFlags {
			if fe.HasFlag(flag) {
				needsReview = true
			}
		}
	}

	if weightSum > 0 {
		rec.OverallConfidence = confSum / weightSum
	}
	if rec.OverallConfidence < a.ConfidenceFloor {
		needsReview = true
	}
	rec.NeedsReview = needsReview

	a.Logger.Debug("engine.assemble.ok",
		"document_id", docID,
		"template", rec.TemplateVersion,
		"overall_confidence", rec.OverallConfidence,
		"needs_review", rec.NeedsReview)
	return rec
}
