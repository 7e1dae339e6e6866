package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/entity"
)

// tesseractTSV recognizes one rendered page image and converts the TSV
// word rows into line-level text blocks. Pixel boxes are scaled back into
// page points so OCR spans line up with native ones.
func (e *Engine) tesseractTSV(ctx context.Context, imgPath string, pageIdx int, pageW, pageH float64) ([]entity.TextBlock, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.Lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	// TSV output
	args = append(args, "tsv")

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %s: %w", truncateStderr(errb), err)
	}
	return parseTSV(string(out), pageIdx, e.scale(pageW), e.scale(pageH))
}

// scale maps rendered pixels back to page points. When the page size is
// unknown the identity scale keeps pixel coordinates, which still order and
// union correctly.
func (e *Engine) scale(points float64) float64 {
	if points <= 0 {
		return 1.0
	}
	return 72.0 / float64(e.cfg.DPI)
}

// tesseract TSV columns:
// level page_num block_num par_num line_num word_num left top width height conf text
const tsvColumns = 12

func parseTSV(out string, pageIdx int, scaleX, scaleY float64) ([]entity.TextBlock, error) {
	lines := strings.Split(out, "\n")

	type lineKey struct{ block, par, line int }
	var blocks []entity.TextBlock
	var cur *entity.TextBlock
	var curKey lineKey

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

	for i, ln := range lines {
		if i == 0 || len(ln) == 0 { // skip header
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns { // defensive
			continue
		}
		confStr := cols[10]
		text := strings.TrimSpace(cols[11])
		if text == "" || confStr == "" || confStr == "-1" {
			continue // structural rows (page/block/line markers) carry no text
		}
		conf, err := strconv.ParseFloat(confStr, 64)
		if err != nil {
			continue
		}
		block, _ := strconv.Atoi(cols[2])
		par, _ := strconv.Atoi(cols[3])
		lineNo, _ := strconv.Atoi(cols[4])
		left, _ := strconv.ParseFloat(cols[6], 64)
		top, _ := strconv.ParseFloat(cols[7], 64)
		width, _ := strconv.ParseFloat(cols[8], 64)
		height, _ := strconv.ParseFloat(cols[9], 64)

		tok := entity.Token{
			Text: cleanOCRWord(text),
			Page: pageIdx,
			Box: entity.BoundingBox{
				X0: left * scaleX,
				Y0: top * scaleY,
				X1: (left + width) * scaleX,
				Y1: (top + height) * scaleY,
			},
			Confidence: float32(conf / 100.0), // 0..100 -> 0..1
			Source:     constants.SourceOCR,
		}
		if tok.Text == "" {
			continue
		}

		key := lineKey{block, par, lineNo}
		if cur == nil || key != curKey {
			flush()
			cur = &entity.TextBlock{Page: pageIdx, Source: constants.SourceOCR}
			curKey = key
		}
		cur.Box = cur.Box.Union(tok.Box)
		cur.Tokens = append(cur.Tokens, tok)
	}
	flush()
	return blocks, nil
}
