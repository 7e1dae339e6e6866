package segment

import (
	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
)

// LabeledBlock pairs one text block with its assigned section.
type LabeledBlock struct {
	Block   entity.TextBlock
	Section constants.Section
}

// Labeling is the segmenter's output: blocks in reading order, each carrying
// a section label, with a per-section index for scoped field extraction.
type Labeling struct {
	Blocks []LabeledBlock

	bySection map[constants.Section][]int
}

func newLabeling() *Labeling {
	return &Labeling{bySection: make(map[constants.Section][]int)}
}

func (l *Labeling) append(b entity.TextBlock, sec constants.Section) {
	l.bySection[sec] = append(l.bySection[sec], len(l.Blocks))
	l.Blocks = append(l.Blocks, LabeledBlock{Block: b, Section: sec})
}

// SectionBlocks returns the blocks labeled with sec, in reading order.
func (l *Labeling) SectionBlocks(sec constants.Section) []entity.TextBlock {
	idxs := l.bySection[sec]
	out := make([]entity.TextBlock, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, l.Blocks[i].Block)
	}
	return out
}

// AllBlocks returns every block in reading order, regardless of label.
func (l *Labeling) AllBlocks() []entity.TextBlock {
	out := make([]entity.TextBlock, 0, len(l.Blocks))
	for _, lb := range l.Blocks {
		out = append(out, lb.Block)
	}
	return out
}

// HasSection reports whether any block was labeled with sec.
func (l *Labeling) HasSection(sec constants.Section) bool {
	return len(l.bySection[sec]) > 0
}

// Sections lists the canonical sections present in the document, in
// canonical order.
func (l *Labeling) Sections() []constants.Section {
	var out []constants.Section
	for _, sec := range constants.CanonicalSections {
		if l.HasSection(sec) {
			out = append(out, sec)
		}
	}
	return out
}
