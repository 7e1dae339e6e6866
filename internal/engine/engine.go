// Package engine wires the extraction pipeline: ingest, OCR fallback,
// section segmentation, the field extractor chain, canonicalization and
// record assembly. One Engine is shared by all workers; templates and
// vocabularies are loaded once and read-only, so no locking is needed.
package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/assemble"
	"github.com/chemtrack/sds-extractor/internal/canonical"
	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/extract"
	"github.com/chemtrack/sds-extractor/internal/ingest"
	"github.com/chemtrack/sds-extractor/internal/ocr"
	"github.com/chemtrack/sds-extractor/internal/runner"
	"github.com/chemtrack/sds-extractor/internal/segment"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

type Engine struct {
	cfg       *common.Config
	registry  *template.Registry
	ingestor  *ingest.Ingestor
	ocr       *ocr.Engine
	segmenter *segment.Segmenter
	extractor *extract.Interpreter
	canon     *canonical.Canonicalizer
	assembler *assemble.Assembler
	logger    *slog.Logger
}

// New builds an Engine from configuration. A nil runner uses the real
// external binaries; tests inject a stub.
func New(cfg *common.Config, reg *template.Registry, v *vocab.Vocabulary, r runner.Runner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = vocab.Builtin()
	}
	return &Engine{
		cfg:      cfg,
		registry: reg,
		ingestor: ingest.NewIngestor(ingest.Config{
			Pdfinfo:            cfg.Ingest.Pdfinfo,
			Pdftotext:          cfg.Ingest.Pdftotext,
			Pdfimages:          cfg.Ingest.Pdfimages,
			ScannedCoverageMax: cfg.Ingest.ScannedCoverageMax,
		}, r, logger),
		ocr: ocr.NewEngine(ocr.Config{
			Pdftoppm:    cfg.OCR.Pdftoppm,
			Tesseract:   cfg.OCR.Tesseract,
			Lang:        cfg.OCR.Lang,
			DPI:         cfg.OCR.DPI,
			TessdataDir: cfg.OCR.TessdataDir,
			PSM:         cfg.OCR.PSM,
			OEM:         cfg.OCR.OEM,
			MaxRetries:  cfg.OCR.MaxRetries,
			Backoff:     cfg.OCR.Backoff,
			Concurrency: cfg.OCR.Concurrency,
		}, r, logger),
		segmenter: segment.NewSegmenter(segment.Config{}, logger),
		extractor: extract.NewInterpreter(v, cfg.Extraction, logger),
		canon:     canonical.NewCanonicalizer(v, logger),
		assembler: assemble.NewAssembler(cfg.Extraction.ConfidenceFloor, logger),
		logger:    logger,
	}
}

// Registry exposes the engine's template registry, mainly so callers can
// preload template files before a batch starts.
func (e *Engine) Registry() *template.Registry {
	return e.registry
}

// ExtractFile runs the full pipeline for one document on the calling
// goroutine. An empty templateVersion selects the builtin default.
func (e *Engine) ExtractFile(ctx context.Context, path, templateVersion string) (*entity.Record, error) {
	tpl, err := e.registry.Get(templateVersion)
	if err != nil {
		return nil, err
	}

	doc, err := e.ingestor.Ingest(ctx, path)
	if err != nil {
		return nil, err
	}
	return e.extract(ctx, doc, tpl), nil
}

// ExtractBytes runs the pipeline over an in-memory payload. The document
// identity is derived from the content so repeated runs stay deterministic.
func (e *Engine) ExtractBytes(ctx context.Context, payload []byte, templateVersion string) (*entity.Record, error) {
	tpl, err := e.registry.Get(templateVersion)
	if err != nil {
		return nil, err
	}
	path, cleanup, err := ingest.Spool(payload)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	doc, err := e.ingestor.Ingest(ctx, path)
	if err != nil {
		return nil, err
	}
	doc.ID = ingest.PayloadID(payload)

	rec := e.extract(ctx, doc, tpl)
	rec.SourcePath = ""
	return rec, nil
}

// extract runs everything after ingest. It always returns a record:
// per-page OCR failures and cancellation degrade recall, they never abort
// the document.
func (e *Engine) extract(ctx context.Context, doc *entity.Document, tpl *template.Template) *entity.Record {
	ocrFailed := e.recognizeScannedPages(ctx, doc)

	blocks := doc.Blocks()
	labeling := e.segmenter.Segment(blocks)
	locale := canonical.DetectLocale(joinText(blocks))

	fields := make(map[string]entity.FieldExtraction, len(tpl.Fields))
	for i := range tpl.Fields {
		fd := &tpl.Fields[i]
		fe := e.extractor.ExtractField(labeling, fd)
		fe = e.canon.Canonicalize(fe, fd, locale)
		if ocrFailed && fe.State == constants.StateUnresolved {
			// the value may live on a page that contributed no tokens
			fe.Flags = append(fe.Flags, constants.FlagPageOCRFailed)
		}
		fields[fd.Name] = fe
	}

	rec := e.assembler.Assemble(doc.ID, doc.SourcePath, tpl, fields)
	e.logger.Info("engine.document.ok",
		"doc_id", doc.ID,
		"path", doc.SourcePath,
		"template", rec.TemplateVersion,
		"overall_confidence", rec.OverallConfidence,
		"needs_review", rec.NeedsReview,
		"ocr_degraded", ocrFailed)
	return rec
}

// recognizeScannedPages fills scanned and mixed pages with OCR blocks.
// Cancellation is checked at each page boundary: a cancelled document
// keeps the pages recognized so far and marks the rest failed, yielding a
// partial record. Returns whether any page ended without tokens.
func (e *Engine) recognizeScannedPages(ctx context.Context, doc *entity.Document) bool {
	anyFailed := false
	for i := range doc.Pages {
		p := &doc.Pages[i]
		if p.Class != constants.PageScanned && p.Class != constants.PageMixed {
			continue
		}
		if ctx.Err() != nil {
			p.OCRFailed = true
			anyFailed = true
			continue
		}
		res := e.ocr.RecognizePage(ctx, doc.SourcePath, p.Index, p.Width, p.Height)
		if res.Failed {
			p.OCRFailed = true
			anyFailed = true
			continue
		}
		blocks := res.Blocks
		if p.Class == constants.PageMixed {
			blocks = maskNativeOverlap(p.Blocks, blocks)
		}
		p.Blocks = append(p.Blocks, blocks...)
	}
	return anyFailed
}

// maskNativeOverlap drops OCR tokens whose boxes sit on words the native
// layer already extracted. Mixed pages are rasterized whole, so the
// recognizer re-reads the native text; a misread second copy would collide
// with the native value at the same rule tier.
func maskNativeOverlap(native, recognized []entity.TextBlock) []entity.TextBlock {
	var boxes []entity.BoundingBox
	for _, b := range native {
		for _, t := range b.Tokens {
			boxes = append(boxes, t.Box)
		}
	}
	if len(boxes) == 0 {
		return recognized
	}
	var out []entity.TextBlock
	for _, b := range recognized {
		var kept []entity.Token
		for _, t := range b.Tokens {
			if coveredByNative(t.Box, boxes) {
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) == 0 {
			continue
		}
		if len(kept) < len(b.Tokens) {
			b = rebuildBlock(b, kept)
		}
		out = append(out, b)
	}
	return out
}

func rebuildBlock(b entity.TextBlock, kept []entity.Token) entity.TextBlock {
	words := make([]string, len(kept))
	var box entity.BoundingBox
	for i, t := range kept {
		words[i] = t.Text
		box = box.Union(t.Box)
	}
	b.Tokens = kept
	b.Text = strings.Join(words, " ")
	b.Box = box
	return b
}

// coveredByNative reports whether at least half the token's area lies under
// some native word box.
func coveredByNative(box entity.BoundingBox, native []entity.BoundingBox) bool {
	area := box.Area()
	if area == 0 {
		return false
	}
	for _, n := range native {
		if overlapArea(box, n)/area >= 0.5 {
			return true
		}
	}
	return false
}

func overlapArea(a, b entity.BoundingBox) float64 {
	return entity.BoundingBox{
		X0: max(a.X0, b.X0),
		Y0: max(a.Y0, b.Y0),
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
	}.Area()
}

func joinText(blocks []entity.TextBlock) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
