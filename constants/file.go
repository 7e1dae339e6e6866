package constants

import "strings"

// AllowedExtensions holds the file extensions accepted for SDS ingestion.
// SDS documents arrive as PDFs; anything else is rejected at intake.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a (possibly dotted, mixed-case) extension is
// an accepted document type.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
