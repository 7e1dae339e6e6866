package canonical

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// textualLayouts cover unambiguous month-name forms. Numeric forms are
// handled separately because their day/month order depends on locale.
var textualLayouts = []string{
	"2006-01-02",
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2006/01/02",
	"2006.01.02",
}

var reNumericDate = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\b`)

// NormalizeDate converts a raw date string to ISO yyyy-mm-dd. The second
// return reports whether a numeric form could be read either day-first or
// month-first; in that case the dayFirst hint decides the order and callers
// without a hint should flag the result. An empty string means the value
// could not be read as a date at all.
func NormalizeDate(raw string, dayFirst bool) (string, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range textualLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), false
		}
	}

	m := reNumericDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}

	day, month := a, b
	ambiguous := false
	switch {
	case a > 12 && b <= 12:
		day, month = a, b
	case b > 12 && a <= 12:
		day, month = b, a
	case a <= 12 && b <= 12:
		// either reading is plausible; locale decides
		ambiguous = a != b
		if dayFirst {
			day, month = a, b
		} else {
			day, month = b, a
		}
	default:
		return "", false
	}
	if !validDate(year, month, day) {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), ambiguous
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

// DetectLocale inspects document text for spelling conventions that imply
// day-first numeric dates. British and EU sheets consistently use
// "colour", "odour" and "vapour" where US sheets use the -or forms.
func DetectLocale(text string) string {
	folded := strings.ToLower(text)
	for _, marker := range []string{"colour", "odour", "vapour", "organisation"} {
		if strings.Contains(folded, marker) {
			return "en-gb"
		}
	}
	return ""
}
