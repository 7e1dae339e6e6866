package canonical

import (
	"testing"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

func TestNormalizeDateTextualForms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2023-05-17", "2023-05-17"},
		{"17 May 2023", "2023-05-17"},
		{"May 17, 2023", "2023-05-17"},
		{"17-May-2023", "2023-05-17"},
		{"2023/05/17", "2023-05-17"},
	}
	for _, c := range cases {
		got, ambiguous := NormalizeDate(c.in, false)
		if got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
		if ambiguous {
			t.Errorf("NormalizeDate(%q) should not be ambiguous", c.in)
		}
	}
}

func TestNormalizeDateNumericUnambiguous(t *testing.T) {
	// day > 12 forces the reading regardless of locale
	got, ambiguous := NormalizeDate("17/05/2023", false)
	if got != "2023-05-17" || ambiguous {
		t.Errorf("17/05/2023 = %q (ambiguous %v), want 2023-05-17 unambiguous", got, ambiguous)
	}
	got, _ = NormalizeDate("05/17/2023", false)
	if got != "2023-05-17" {
		t.Errorf("05/17/2023 = %q, want 2023-05-17", got)
	}
}

func TestNormalizeDateNumericAmbiguous(t *testing.T) {
	got, ambiguous := NormalizeDate("05/04/2023", false)
	if !ambiguous {
		t.Fatal("05/04/2023 should be ambiguous")
	}
	if got != "2023-05-04" {
		t.Errorf("month-first reading = %q, want 2023-05-04", got)
	}
	got, _ = NormalizeDate("05/04/2023", true)
	if got != "2023-04-05" {
		t.Errorf("day-first reading = %q, want 2023-04-05", got)
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not a date", "99/99/2023", "13/13/2023"} {
		if got, _ := NormalizeDate(in, false); got != "" {
			t.Errorf("NormalizeDate(%q) = %q, want empty", in, got)
		}
	}
}

func TestCanonicalizeDateLocaleHint(t *testing.T) {
	c := NewCanonicalizer(vocab.Builtin(), nil)
	fd := &template.FieldDef{Name: "issue_date", Vocabulary: template.VocabDate}

	// ambiguous numeric date with a day-first locale hint: resolved, no flag
	fe := c.Canonicalize(resolved("03/04/2023"), fd, "en-GB")
	if fe.Normalized != "2023-04-03" {
		t.Errorf("Normalized = %q, want day-first 2023-04-03", fe.Normalized)
	}
	if fe.HasFlag(constants.FlagAmbiguousDate) {
		t.Error("a locale hint resolves the ambiguity; no flag expected")
	}

	// same date without a hint: normalized deterministically but flagged
	fe = c.Canonicalize(resolved("03/04/2023"), fd, "")
	if !fe.HasFlag(constants.FlagAmbiguousDate) {
		t.Error("ambiguous date without a hint must be flagged")
	}

	// unparsable date keeps its raw form under the flag
	fe = c.Canonicalize(resolved("sometime in spring"), fd, "")
	if !fe.HasFlag(constants.FlagAmbiguousDate) {
		t.Error("unparsable date must be flagged")
	}
	if fe.Normalized != "sometime in spring" {
		t.Errorf("Normalized = %q, want raw retained", fe.Normalized)
	}
}

func TestDetectLocale(t *testing.T) {
	if got := DetectLocale("Appearance: clear liquid. Odour: fruity."); got != "en-gb" {
		t.Errorf("DetectLocale = %q, want en-gb for -our spellings", got)
	}
	if got := DetectLocale("Appearance: clear liquid. Odor: fruity."); got != "" {
		t.Errorf("DetectLocale = %q, want empty for US spellings", got)
	}
}
