package extract

import (
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/textnorm"
)

// matchPattern runs a compiled pattern over the joined corpus. The first
// capture group is the value; a group-less pattern yields the whole match.
func (in *Interpreter) matchPattern(c *corpus, rule *template.Rule) *match {
	loc := rule.Regexp().FindStringSubmatchIndex(c.text)
	if loc == nil {
		return nil
	}
	from, to := loc[0], loc[1]
	if len(loc) >= 4 && loc[2] >= 0 {
		from, to = loc[2], loc[3]
	}
	raw := c.text[from:to]
	span, tokConf := c.resolve(from, to)
	return &match{
		raw:  raw,
		conf: in.prior(constants.RulePattern) * tokConf,
		span: span,
	}
}

// matchProximity scans the token stream for the keyword and captures up to
// Window following tokens on the same line, skipping label punctuation.
func (in *Interpreter) matchProximity(blocks []entity.TextBlock, rule *template.Rule) *match {
	window := rule.Window
	if window <= 0 {
		window = in.cfg.ProximityWindow
	}
	keyword := textnorm.Fold(rule.Keyword)

	for _, blk := range blocks {
		for i, tok := range blk.Tokens {
			if !strings.Contains(textnorm.Fold(tok.Text), keyword) {
				continue
			}
			answer := captureAfter(blk.Tokens[i+1:], window)
			if len(answer) == 0 {
				continue
			}
			texts := make([]string, len(answer))
			box := entity.BoundingBox{}
			var sum float64
			for j, a := range answer {
				texts[j] = a.Text
				box = box.Union(a.Box)
				sum += float64(a.Confidence)
			}
			return &match{
				raw:  strings.Join(texts, " "),
				conf: in.prior(constants.RuleProximity) * float32(sum/float64(len(answer))),
				span: &entity.SourceSpan{Page: blk.Page, Box: box},
			}
		}
	}
	return nil
}

// captureAfter takes up to window answer tokens, dropping leading separator
// tokens (":", "-", "=") left over from label formatting.
func captureAfter(tokens []entity.Token, window int) []entity.Token {
	var out []entity.Token
	for _, t := range tokens {
		trimmed := strings.Trim(t.Text, ":-=·")
		if len(out) == 0 && trimmed == "" {
			continue
		}
		out = append(out, t)
		if len(out) >= window {
			break
		}
	}
	return out
}

// matchTable looks for a controlled-vocabulary entry inside each block.
// Entries are tried longest-first so "Merck Life Science" beats "Merck".
// The canonical table entry is the value, regardless of surface casing.
func (in *Interpreter) matchTable(blocks []entity.TextBlock, rule *template.Rule) *match {
	entries, err := in.vocab.Table(rule.Table)
	if err != nil {
		// registry validation guarantees the table exists; defensive only
		return nil
	}
	folded := make([]string, len(entries))
	for i, e := range entries {
		folded[i] = textnorm.Fold(e)
	}

	for _, blk := range blocks {
		blkFolded := " " + textnorm.Fold(blk.Text) + " "
		for i, f := range folded {
			if f == "" {
				continue
			}
			if containsWord(blkFolded, f) {
				return &match{
					raw:  entries[i],
					conf: in.prior(constants.RuleTable) * blockConfidence(blk),
					span: &entity.SourceSpan{Page: blk.Page, Box: blk.Box},
				}
			}
		}
	}
	return nil
}

// containsWord reports whether needle occurs in haystack on word
// boundaries. haystack must be pre-padded with spaces.
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		i += idx
		before := haystack[i-1]
		after := haystack[i+len(needle)]
		if isWordBoundary(before) && isWordBoundary(after) {
			return true
		}
		idx = i + 1
	}
}

func isWordBoundary(b byte) bool {
	switch b {
	case ' ', ',', ';', ':', '.', '(', ')', '/', '-':
		return true
	}
	return false
}
