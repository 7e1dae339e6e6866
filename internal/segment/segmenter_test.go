package segment

import (
	"strings"
	"testing"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
)

func block(page int, text string) entity.TextBlock {
	b := entity.TextBlock{Text: text, Page: page, Source: constants.SourceNative}
	for _, w := range strings.Fields(text) {
		b.Tokens = append(b.Tokens, entity.Token{
			Text: w, Page: page, Confidence: 1.0, Source: constants.SourceNative,
		})
	}
	return b
}

func sectionText(l *Labeling, sec constants.Section) string {
	var parts []string
	for _, b := range l.SectionBlocks(sec) {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}

func TestSegmentBasicFlow(t *testing.T) {
	s := NewSegmenter(Config{}, nil)
	blocks := []entity.TextBlock{
		block(0, "Acme Chemicals Safety Data Sheet"),
		block(0, "SECTION 1: Identification of the substance/mixture and of the company/undertaking"),
		block(0, "Product name: Acetone"),
		block(0, "SECTION 2: Hazards identification"),
		block(0, "H225 Highly flammable liquid and vapour"),
		block(0, "SECTION 9: Physical and chemical properties"),
		block(0, "Flash point: -20 C"),
	}

	l := s.Segment(blocks)

	if got := sectionText(l, constants.SectionIdentification); !strings.Contains(got, "Product name: Acetone") {
		t.Errorf("identification = %q, want product line", got)
	}
	if got := sectionText(l, constants.SectionHazards); !strings.Contains(got, "H225") {
		t.Errorf("hazards = %q, want H225 line", got)
	}
	if got := sectionText(l, constants.SectionPhysicalChemical); !strings.Contains(got, "Flash point") {
		t.Errorf("physical_chemical = %q, want flash point line", got)
	}
	// the preamble line precedes any header
	if got := sectionText(l, constants.SectionUnclassified); !strings.Contains(got, "Acme Chemicals") {
		t.Errorf("unclassified = %q, want preamble", got)
	}
}

func TestSegmentReorderedSections(t *testing.T) {
	s := NewSegmenter(Config{}, nil)
	// section 4 appears physically before section 2
	blocks := []entity.TextBlock{
		block(0, "SECTION 4: First aid measures"),
		block(0, "If inhaled: move to fresh air."),
		block(0, "SECTION 2: Hazards identification"),
		block(0, "Causes serious eye irritation."),
	}

	l := s.Segment(blocks)

	if got := sectionText(l, constants.SectionFirstAid); !strings.Contains(got, "fresh air") {
		t.Errorf("first_aid = %q, labeling must follow the header, not physical order", got)
	}
	if got := sectionText(l, constants.SectionHazards); !strings.Contains(got, "eye irritation") {
		t.Errorf("hazards = %q", got)
	}
}

func TestSegmentDuplicateHeaderReenters(t *testing.T) {
	s := NewSegmenter(Config{}, nil)
	// a heading restated after a page break re-enters the same section
	blocks := []entity.TextBlock{
		block(0, "SECTION 2: Hazards identification"),
		block(0, "H315 Causes skin irritation"),
		block(1, "SECTION 2: Hazards identification"),
		block(1, "H319 Causes serious eye irritation"),
	}

	l := s.Segment(blocks)

	got := sectionText(l, constants.SectionHazards)
	if !strings.Contains(got, "H315") || !strings.Contains(got, "H319") {
		t.Errorf("hazards = %q, want both runs merged into one section", got)
	}
	for _, sec := range l.Sections() {
		if sec != constants.SectionHazards {
			t.Errorf("unexpected section %q", sec)
		}
	}
}

func TestSegmentHeaderVariants(t *testing.T) {
	s := NewSegmenter(Config{}, nil)
	cases := []struct {
		line string
		want constants.Section
	}{
		{"SECTION 5: Fire-fighting measures", constants.SectionFireFighting},
		{"5. FIREFIGHTING MEASURES", constants.SectionFireFighting},
		{"14 - Transport information", constants.SectionTransport},
		{"Section 8: Exposure controls / personal protection", constants.SectionExposureControls},
	}
	for _, c := range cases {
		sec, score, ok := s.matchHeader(c.line)
		if !ok || sec != c.want {
			t.Errorf("matchHeader(%q) = %q (score %.2f, ok %v), want %q", c.line, sec, score, ok, c.want)
		}
	}
}

func TestSegmentRejectsProseLines(t *testing.T) {
	s := NewSegmenter(Config{}, nil)
	lines := []string{
		"Wash hands thoroughly after handling and before eating.",
		"Store in a well-ventilated place away from ignition sources nearby.",
		"P210 Keep away from heat, hot surfaces, sparks and open flames.",
	}
	for _, line := range lines {
		if sec, score, ok := s.matchHeader(line); ok {
			t.Errorf("matchHeader(%q) = %q (score %.2f), want no match", line, sec, score)
		}
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	s := NewSegmenter(Config{}, nil)
	l := s.Segment(nil)
	if len(l.AllBlocks()) != 0 {
		t.Error("empty input yields an empty labeling")
	}
	if l.HasSection(constants.SectionHazards) {
		t.Error("no sections expected")
	}
}
