// Package canonical normalizes raw field matches against the reference
// vocabularies: CAS registry numbers with check-digit validation, GHS
// hazard/precautionary statement codes, and dates. Values that fail
// validation are flagged and retained, never dropped.
package canonical

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/textnorm"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

type Canonicalizer struct {
	vocab  *vocab.Vocabulary
	logger *slog.Logger
}

func NewCanonicalizer(v *vocab.Vocabulary, logger *slog.Logger) *Canonicalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = vocab.Builtin()
	}
	return &Canonicalizer{vocab: v, logger: logger}
}

var (
	reHCode = regexp.MustCompile(`\bH\d{3}[A-Za-z]{0,2}(?:\+H\d{3})*\b`)
	rePCode = regexp.MustCompile(`\bP\d{3}(?:\+P\d{3})*\b`)
)

// Canonicalize fills the normalized value of a resolved extraction
// according to the field's declared vocabulary. Conflicting and unresolved
// fields pass through untouched: there is no agreed raw value to
// normalize.
func (c *Canonicalizer) Canonicalize(fe entity.FieldExtraction, fd *template.FieldDef, localeHint string) entity.FieldExtraction {
	if fe.State != constants.StateResolved {
		return fe
	}

	switch fd.Vocabulary {
	case template.VocabCAS:
		return c.canonicalizeCAS(fe)
	case template.VocabHazardCodes:
		return c.canonicalizeCodes(fe, reHCode)
	case template.VocabPrecautionary:
		return c.canonicalizeCodes(fe, rePCode)
	case template.VocabDate:
		return c.canonicalizeDate(fe, localeHint)
	default:
		fe.Normalized = textnorm.Truncate(textnorm.CollapseSpace(fe.Raw), 500)
		return fe
	}
}

// canonicalizeCAS validates the check digit. A value without a registry-
// formatted number, or with a failing check digit, keeps its raw form and
// is flagged InvalidChecksum.
func (c *Canonicalizer) canonicalizeCAS(fe entity.FieldExtraction) entity.FieldExtraction {
	cas := vocab.FindCAS(fe.Raw)
	if cas == "" {
		fe.Normalized = textnorm.CollapseSpace(fe.Raw)
		fe.Flags = append(fe.Flags, constants.FlagInvalidChecksum)
		return fe
	}
	fe.Normalized = cas
	if !vocab.ValidCAS(cas) {
		fe.Flags = append(fe.Flags, constants.FlagInvalidChecksum)
		c.logger.Debug("canonical.cas.invalid_checksum", "field", fe.Field, "cas", cas)
	}
	return fe
}

// canonicalizeCodes maps matched statement codes to their canonical
// statements. Text with no recognizable code, and codes missing from the
// vocabulary, are retained verbatim under an Uncoded flag.
func (c *Canonicalizer) canonicalizeCodes(fe entity.FieldExtraction, re *regexp.Regexp) entity.FieldExtraction {
	codes := dedupe(re.FindAllString(fe.Raw, -1))
	if len(codes) == 0 {
		fe.Normalized = textnorm.Truncate(textnorm.CollapseSpace(fe.Raw), 500)
		fe.Flags = append(fe.Flags, constants.FlagUncoded)
		return fe
	}

	var parts []string
	uncoded := false
	for _, code := range codes {
		// combined codes (P301+P310) resolve part by part
		var stmts []string
		for _, sub := range strings.Split(code, "+") {
			if s, ok := c.vocab.Statement(sub); ok {
				stmts = append(stmts, s)
			}
		}
		if len(stmts) == 0 {
			parts = append(parts, code)
			uncoded = true
			continue
		}
		parts = append(parts, code+": "+strings.Join(stmts, ". "))
	}
	fe.Normalized = strings.Join(parts, "; ")
	if uncoded {
		fe.Flags = append(fe.Flags, constants.FlagUncoded)
	}
	return fe
}

func (c *Canonicalizer) canonicalizeDate(fe entity.FieldExtraction, localeHint string) entity.FieldExtraction {
	iso, ambiguous := NormalizeDate(fe.Raw, c.dayFirst(localeHint))
	if iso == "" {
		fe.Normalized = textnorm.CollapseSpace(fe.Raw)
		fe.Flags = append(fe.Flags, constants.FlagAmbiguousDate)
		return fe
	}
	fe.Normalized = iso
	if ambiguous && localeHint == "" {
		fe.Flags = append(fe.Flags, constants.FlagAmbiguousDate)
	}
	return fe
}

func (c *Canonicalizer) dayFirst(localeHint string) bool {
	return c.vocab.DayFirstLocales[strings.ToLower(localeHint)]
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		u := strings.ToUpper(s)
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
