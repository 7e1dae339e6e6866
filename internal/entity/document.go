package entity

import (
	"github.com/google/uuid"

	"github.com/chemtrack/sds-extractor/constants"
)

// BoundingBox is an axis-aligned rectangle in page points, origin top-left.
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Area returns the box area in square points. Degenerate boxes return 0.
func (b BoundingBox) Area() float64 {
	w := b.X1 - b.X0
	h := b.Y1 - b.Y0
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union returns the smallest box covering both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b == (BoundingBox{}) {
		return o
	}
	if o == (BoundingBox{}) {
		return b
	}
	u := b
	if o.X0 < u.X0 {
		u.X0 = o.X0
	}
	if o.Y0 < u.Y0 {
		u.Y0 = o.Y0
	}
	if o.X1 > u.X1 {
		u.X1 = o.X1
	}
	if o.Y1 > u.Y1 {
		u.Y1 = o.Y1
	}
	return u
}

// Token is a single recognized word with its provenance. Native tokens carry
// confidence 1.0; OCR tokens carry the engine's per-word score.
type Token struct {
	Text       string                `json:"text"`
	Page       int                   `json:"page"`
	Box        BoundingBox           `json:"box"`
	Confidence float32               `json:"confidence"`
	Source     constants.BlockSource `json:"source"`
}

// TextBlock is a line-level run of tokens sharing a page and source.
type TextBlock struct {
	Text   string                `json:"text"`
	Page   int                   `json:"page"`
	Box    BoundingBox           `json:"box"`
	Source constants.BlockSource `json:"source"`
	Tokens []Token               `json:"tokens,omitempty"`
}

// Page holds one document page's classification and extracted blocks.
// Blocks is empty for scanned pages until the OCR stage fills it in.
type Page struct {
	Index     int                 `json:"index"`
	Width     float64             `json:"width"`
	Height    float64             `json:"height"`
	Class     constants.PageClass `json:"class"`
	Blocks    []TextBlock         `json:"blocks,omitempty"`
	OCRFailed bool                `json:"ocr_failed,omitempty"`
}

// Document is an ingested SDS: immutable once built.
type Document struct {
	ID         uuid.UUID `json:"id"`
	SourcePath string    `json:"source_path"`
	PageCount  int       `json:"page_count"`
	Pages      []Page    `json:"pages"`
}

// Blocks returns all text blocks of the document in reading order
// (page order, then block order within the page).
func (d *Document) Blocks() []TextBlock {
	var out []TextBlock
	for _, p := range d.Pages {
		out = append(out, p.Blocks...)
	}
	return out
}
