package constants

import (
	"strings"
)

// Section is one of the 16 canonical GHS SDS sections, or Unclassified for
// spans that precede the first matched header (or follow a span no header
// claimed).
type Section string

const (
	SectionIdentification      Section = "identification"
	SectionHazards             Section = "hazards"
	SectionComposition         Section = "composition"
	SectionFirstAid            Section = "first_aid"
	SectionFireFighting        Section = "fire_fighting"
	SectionAccidentalRelease   Section = "accidental_release"
	SectionHandlingStorage     Section = "handling_storage"
	SectionExposureControls    Section = "exposure_controls"
	SectionPhysicalChemical    Section = "physical_chemical"
	SectionStabilityReactivity Section = "stability_reactivity"
	SectionToxicological       Section = "toxicological"
	SectionEcological          Section = "ecological"
	SectionDisposal            Section = "disposal"
	SectionTransport           Section = "transport"
	SectionRegulatory          Section = "regulatory"
	SectionOther               Section = "other"

	SectionUnclassified Section = "unclassified"

	// SectionAny is a template-only value meaning "no expected section":
	// rules for such fields always run against the whole document.
	SectionAny Section = "any"
)

// CanonicalSections lists the 16 GHS sections in their canonical order.
// The index+1 is the conventional SDS section number.
var CanonicalSections = []Section{
	SectionIdentification,
	SectionHazards,
	SectionComposition,
	SectionFirstAid,
	SectionFireFighting,
	SectionAccidentalRelease,
	SectionHandlingStorage,
	SectionExposureControls,
	SectionPhysicalChemical,
	SectionStabilityReactivity,
	SectionToxicological,
	SectionEcological,
	SectionDisposal,
	SectionTransport,
	SectionRegulatory,
	SectionOther,
}

// SectionTitles maps each canonical section to its GHS heading text. The
// segmenter fuzzy-matches candidate header lines against these.
var SectionTitles = map[Section]string{
	SectionIdentification:      "Identification of the substance/mixture and of the company/undertaking",
	SectionHazards:             "Hazards identification",
	SectionComposition:         "Composition/information on ingredients",
	SectionFirstAid:            "First aid measures",
	SectionFireFighting:        "Firefighting measures",
	SectionAccidentalRelease:   "Accidental release measures",
	SectionHandlingStorage:     "Handling and storage",
	SectionExposureControls:    "Exposure controls/personal protection",
	SectionPhysicalChemical:    "Physical and chemical properties",
	SectionStabilityReactivity: "Stability and reactivity",
	SectionToxicological:       "Toxicological information",
	SectionEcological:          "Ecological information",
	SectionDisposal:            "Disposal considerations",
	SectionTransport:           "Transport information",
	SectionRegulatory:          "Regulatory information",
	SectionOther:               "Other information",
}

// SectionKeywords holds the discriminating words per section, used by the
// segmenter's keyword-overlap score. Regional SDS variants reword headings
// ("Fire-fighting measures", "Hazard(s) identification") but keep these stems.
var SectionKeywords = map[Section][]string{
	SectionIdentification:      {"identification", "product", "company", "supplier"},
	SectionHazards:             {"hazards", "hazard", "identification"},
	SectionComposition:         {"composition", "ingredients", "information"},
	SectionFirstAid:            {"first", "aid", "measures"},
	SectionFireFighting:        {"firefighting", "fire", "fighting", "measures"},
	SectionAccidentalRelease:   {"accidental", "release", "measures", "spill"},
	SectionHandlingStorage:     {"handling", "storage"},
	SectionExposureControls:    {"exposure", "controls", "personal", "protection"},
	SectionPhysicalChemical:    {"physical", "chemical", "properties"},
	SectionStabilityReactivity: {"stability", "reactivity"},
	SectionToxicological:       {"toxicological", "toxicity", "information"},
	SectionEcological:          {"ecological", "ecology", "information"},
	SectionDisposal:            {"disposal", "considerations", "waste"},
	SectionTransport:           {"transport", "information", "shipping"},
	SectionRegulatory:          {"regulatory", "regulations", "safety", "information"},
	SectionOther:               {"other", "information", "supplementary"},
}

// SectionNumber returns the conventional 1-based SDS number for a canonical
// section, or 0 for unclassified/any.
func SectionNumber(s Section) int {
	for i, c := range CanonicalSections {
		if c == s {
			return i + 1
		}
	}
	return 0
}

// SectionByNumber returns the canonical section for a 1-based SDS number.
func SectionByNumber(n int) (Section, bool) {
	if n < 1 || n > len(CanonicalSections) {
		return SectionUnclassified, false
	}
	return CanonicalSections[n-1], true
}

// CanonicalizeSection maps a template-declared section value to a known
// Section. Accepts canonical slugs, "any", and bare section numbers ("4").
func CanonicalizeSection(input string) (Section, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" || normalized == string(SectionAny) {
		return SectionAny, true
	}
	for _, s := range CanonicalSections {
		if normalized == string(s) {
			return s, true
		}
	}
	if n := parseSectionNumber(normalized); n > 0 {
		return SectionByNumber(n)
	}
	return SectionUnclassified, false
}

func parseSectionNumber(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
