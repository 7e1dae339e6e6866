package constants

// ResolutionState is the canonical per-field outcome of the extractor chain.
type ResolutionState string

// Stable values (these exact strings appear in exported records).
const (
	StateResolved    ResolutionState = "RESOLVED"    // a single rule match won
	StateUnresolved  ResolutionState = "UNRESOLVED"  // no rule fired anywhere
	StateConflicting ResolutionState = "CONFLICTING" // equal-priority matches disagree
)

// Flag marks a non-fatal condition attached to a field by the canonicalizer
// or the OCR stage. Flagged values are retained, never dropped.
type Flag string

const (
	FlagInvalidChecksum Flag = "INVALID_CHECKSUM" // CAS check digit failed
	FlagUncoded         Flag = "UNCODED"          // no H-/P- code mapping found
	FlagAmbiguousDate   Flag = "AMBIGUOUS_DATE"   // day/month order undecidable
	FlagPageOCRFailed   Flag = "PAGE_OCR_FAILED"  // source page lost to OCR failure
)

// PageClass classifies a page by how its text was obtainable.
type PageClass string

const (
	PageNative  PageClass = "NATIVE"  // extractable text covers enough of the page
	PageScanned PageClass = "SCANNED" // image-only, needs OCR
	PageMixed   PageClass = "MIXED"   // native text plus significant image regions
)

// BlockSource tags where a text block's tokens came from.
type BlockSource string

const (
	SourceNative BlockSource = "native"
	SourceOCR    BlockSource = "ocr"
)

// RuleType is the tagged variant set of the template rule interpreter.
type RuleType string

const (
	RuleTable     RuleType = "table"     // controlled-vocabulary lookup
	RulePattern   RuleType = "pattern"   // regular expression over normalized text
	RuleProximity RuleType = "proximity" // keyword with answer within N tokens
)

// RuleTier orders rule types by reliability. Higher tiers win; matches within
// one tier that disagree become CONFLICTING rather than auto-resolved.
func RuleTier(t RuleType) int {
	switch t {
	case RuleTable:
		return 3
	case RulePattern:
		return 2
	case RuleProximity:
		return 1
	default:
		return 0
	}
}
