package ingest

import (
	"encoding/xml"
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
)

// pdftotext -bbox emits XHTML with one <page> element per page and one
// <word> element per word, boxed in page points.
type bboxHTML struct {
	XMLName xml.Name `xml:"html"`
	Doc     bboxDoc  `xml:"body>doc"`
}

type bboxDoc struct {
	Pages []bboxPage `xml:"page"`
}

type bboxPage struct {
	Width  float64    `xml:"width,attr"`
	Height float64    `xml:"height,attr"`
	Words  []bboxWord `xml:"word"`
}

type bboxWord struct {
	XMin float64 `xml:"xMin,attr"`
	YMin float64 `xml:"yMin,attr"`
	XMax float64 `xml:"xMax,attr"`
	YMax float64 `xml:"yMax,attr"`
	Text string  `xml:",chardata"`
}

// lineBreakTolerance is how far (points) a word's top may drift from the
// current line's top before we start a new line block.
const lineBreakTolerance = 2.5

func parseBBox(data []byte) ([]entity.Page, error) {
	var doc bboxHTML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	pages := make([]entity.Page, 0, len(doc.Doc.Pages))
	for i, bp := range doc.Doc.Pages {
		page := entity.Page{
			Index:  i,
			Width:  bp.Width,
			Height: bp.Height,
		}
		page.Blocks = wordsToLines(i, bp.Words)
		pages = append(pages, page)
	}
	return pages, nil
}

// wordsToLines groups word boxes into line-level text blocks in reading
// order. pdftotext emits words already sorted top-to-bottom, left-to-right.
func wordsToLines(pageIdx int, words []bboxWord) []entity.TextBlock {
	var blocks []entity.TextBlock
	var cur *entity.TextBlock
	var curTop float64

	flush := func() {
		if cur == nil || len(cur.Tokens) == 0 {
			cur = nil
			return
		}
		texts := make([]string, len(cur.Tokens))
		for i, t := range cur.Tokens {
			texts[i] = t.Text
		}
		cur.Text = strings.Join(texts, " ")
		blocks = append(blocks, *cur)
		cur = nil
	}

	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		tok := entity.Token{
			Text:       text,
			Page:       pageIdx,
			Box:        entity.BoundingBox{X0: w.XMin, Y0: w.YMin, X1: w.XMax, Y1: w.YMax},
			Confidence: 1.0, // native text is authoritative
			Source:     constants.SourceNative,
		}
		if cur == nil || abs(w.YMin-curTop) > lineBreakTolerance {
			flush()
			cur = &entity.TextBlock{
				Page:   pageIdx,
				Source: constants.SourceNative,
			}
			curTop = w.YMin
		}
		cur.Box = cur.Box.Union(tok.Box)
		cur.Tokens = append(cur.Tokens, tok)
	}
	flush()
	return blocks
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
