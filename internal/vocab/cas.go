package vocab

import (
	"regexp"
	"strings"
)

// reCAS matches the registry format: 2-7 digits, 2 digits, check digit.
var reCAS = regexp.MustCompile(`\b(\d{2,7}-\d{2}-\d)\b`)

// FindCAS returns the first registry-formatted number inside s, or "".
func FindCAS(s string) string {
	return reCAS.FindString(s)
}

// ValidCAS reports whether a hyphen-delimited CAS number passes the
// check-digit rule: each digit (check digit excluded) is weighted by its
// 1-based position counted from the right, and the weighted sum modulo 10
// must equal the check digit. 67-64-1 (acetone) is valid; 67-64-2 is not.
func ValidCAS(cas string) bool {
	cas = strings.TrimSpace(cas)
	if !reCAS.MatchString(cas) || reCAS.FindString(cas) != cas {
		return false
	}
	digits := strings.ReplaceAll(cas, "-", "")
	check := int(digits[len(digits)-1] - '0')
	sum := 0
	body := digits[:len(digits)-1]
	for i := 0; i < len(body); i++ {
		weight := len(body) - i
		sum += weight * int(body[i]-'0')
	}
	return sum%10 == check
}
