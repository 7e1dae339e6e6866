// Package extract evaluates a template's field rules against a
// section-labeled token stream. Rules are data (pattern, keyword-proximity,
// table-lookup) interpreted generically, so document-format differences
// live in templates, not code branches.
package extract

import (
	"log/slog"
	"sort"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/segment"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/textnorm"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

// maxValueRunes caps captured values; SDS prose sections can run long.
const maxValueRunes = 500

type Interpreter struct {
	vocab  *vocab.Vocabulary
	cfg    common.ExtractionConfig
	logger *slog.Logger
}

func NewInterpreter(v *vocab.Vocabulary, cfg common.ExtractionConfig, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = vocab.Builtin()
	}
	if cfg.PriorTable == 0 {
		cfg.PriorTable = 0.95
	}
	if cfg.PriorPattern == 0 {
		cfg.PriorPattern = 0.85
	}
	if cfg.PriorProximity == 0 {
		cfg.PriorProximity = 0.70
	}
	if cfg.ProximityWindow <= 0 {
		cfg.ProximityWindow = 8
	}
	return &Interpreter{vocab: v, cfg: cfg, logger: logger}
}

// match is one rule firing: a candidate value with provenance.
type match struct {
	raw    string
	ruleID string
	tier   int
	conf   float32
	span   *entity.SourceSpan
}

// ExtractField runs a field's rules against its expected section first and
// the whole document second. Matches from the highest tier that fired are
// compared: a single agreed value resolves the field; materially different
// values at the same tier mark it CONFLICTING with every candidate
// retained. No rule firing anywhere leaves the field UNRESOLVED with
// confidence 0.
func (in *Interpreter) ExtractField(l *segment.Labeling, fd *template.FieldDef) entity.FieldExtraction {
	fe := entity.FieldExtraction{
		Field: fd.Name,
		State: constants.StateUnresolved,
	}

	var matches []match
	sec := fd.ExpectedSection()
	if sec != constants.SectionAny && l.HasSection(sec) {
		matches = in.evaluate(l.SectionBlocks(sec), fd)
	}
	if len(matches) == 0 {
		matches = in.evaluate(l.AllBlocks(), fd)
	}
	if len(matches) == 0 {
		in.logger.Debug("extract.field.unresolved", "field", fd.Name)
		return fe
	}

	// only the best tier that fired competes
	top := matches[0].tier
	for _, m := range matches {
		if m.tier > top {
			top = m.tier
		}
	}
	winners := matches[:0:0]
	for _, m := range matches {
		if m.tier == top {
			winners = append(winners, m)
		}
	}

	distinct := distinctValues(winners)
	if len(distinct) > 1 {
		fe.State = constants.StateConflicting
		fe.Candidates = make([]entity.Candidate, len(winners))
		for i, m := range winners {
			fe.Candidates[i] = entity.Candidate{
				Raw:        m.raw,
				RuleID:     m.ruleID,
				Confidence: m.conf,
				Span:       m.span,
			}
		}
		in.logger.Debug("extract.field.conflicting", "field", fd.Name, "candidates", len(winners))
		return fe
	}

	best := winners[0]
	fe.State = constants.StateResolved
	fe.Raw = best.raw
	fe.RuleID = best.ruleID
	fe.Confidence = best.conf
	fe.Span = best.span
	return fe
}

// evaluate runs every rule once over the given blocks and collects at most
// one match per rule.
func (in *Interpreter) evaluate(blocks []entity.TextBlock, fd *template.FieldDef) []match {
	if len(blocks) == 0 {
		return nil
	}
	corpus := buildCorpus(blocks)

	var out []match
	for i := range fd.Rules {
		rule := &fd.Rules[i]
		var m *match
		switch rule.Type {
		case constants.RulePattern:
			m = in.matchPattern(corpus, rule)
		case constants.RuleProximity:
			m = in.matchProximity(blocks, rule)
		case constants.RuleTable:
			m = in.matchTable(blocks, rule)
		}
		if m == nil {
			continue
		}
		m.raw = textnorm.Truncate(textnorm.CollapseSpace(m.raw), maxValueRunes)
		if m.raw == "" {
			continue
		}
		m.ruleID = rule.ID
		m.tier = constants.RuleTier(rule.Type)
		out = append(out, *m)
	}
	return out
}

// prior returns the configured confidence prior for a rule tier.
func (in *Interpreter) prior(t constants.RuleType) float32 {
	switch t {
	case constants.RuleTable:
		return in.cfg.PriorTable
	case constants.RulePattern:
		return in.cfg.PriorPattern
	default:
		return in.cfg.PriorProximity
	}
}

// distinctValues folds candidate values and returns the distinct set;
// "materially different" means they differ after case and whitespace
// folding.
func distinctValues(ms []match) []string {
	set := make(map[string]struct{}, len(ms))
	for _, m := range ms {
		set[textnorm.Fold(m.raw)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
