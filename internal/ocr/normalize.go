package ocr

import (
	"regexp"
	"strings"
)

var reBoxNoise = regexp.MustCompile(`^[_\-|]{3,}$`)

// cleanOCRWord strips the ruler/box artifacts tesseract emits for table
// borders and scanner streaks. Conservative: real words pass untouched.
func cleanOCRWord(s string) string {
	if reBoxNoise.MatchString(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
