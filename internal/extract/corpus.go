package extract

import (
	"strings"

	"github.com/chemtrack/sds-extractor/internal/entity"
)

// corpus is the joined text of a block run with enough bookkeeping to map a
// character range back to the blocks (and so the page/box/confidence) that
// produced it.
type corpus struct {
	text   string
	blocks []entity.TextBlock
	// starts[i] is the offset of blocks[i].Text inside text.
	starts []int
}

func buildCorpus(blocks []entity.TextBlock) *corpus {
	var b strings.Builder
	starts := make([]int, len(blocks))
	for i, blk := range blocks {
		starts[i] = b.Len()
		b.WriteString(blk.Text)
		b.WriteByte('\n')
	}
	return &corpus{text: b.String(), blocks: blocks, starts: starts}
}

// resolve maps a [from,to) character range to a source span and the mean
// token confidence of the covering blocks.
func (c *corpus) resolve(from, to int) (*entity.SourceSpan, float32) {
	var span *entity.SourceSpan
	var sum float64
	var n int
	for i, blk := range c.blocks {
		start := c.starts[i]
		end := start + len(blk.Text)
		if end <= from || start >= to {
			continue
		}
		if span == nil {
			span = &entity.SourceSpan{Page: blk.Page, Box: blk.Box}
		} else if blk.Page == span.Page {
			span.Box = span.Box.Union(blk.Box)
		}
		for _, t := range blk.Tokens {
			sum += float64(t.Confidence)
			n++
		}
	}
	if span == nil {
		return nil, 0
	}
	if n == 0 {
		return span, 1.0
	}
	return span, float32(sum / float64(n))
}

// blockConfidence is the mean token confidence of one block.
func blockConfidence(b entity.TextBlock) float32 {
	if len(b.Tokens) == 0 {
		return 1.0
	}
	var sum float64
	for _, t := range b.Tokens {
		sum += float64(t.Confidence)
	}
	return float32(sum / float64(len(b.Tokens)))
}
