// Package ocr is the fallback stage for pages the ingestor classified as
// scanned or mixed. Recognition runs through external tesseract in TSV mode
// so every token carries the engine's confidence and a bounding box.
//
// OCR is the dominant pipeline cost and the only stage that can suspend on
// an external resource limit, so its concurrency is capped by an inner
// semaphore sized to the recognition engine, independent of the outer
// document pool.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/runner"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang        string // default "eng"
	DPI         int    // rasterization DPI for scanned pages, default 300
	TessdataDir string
	PSM         int // e.g., 6 is good for uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default

	MaxRetries  int           // transient-failure retries per page, default 2
	Backoff     time.Duration // initial backoff, doubled per retry
	Concurrency int           // recognition slots, default 2
}

// PageResult reports one page's OCR outcome. Failed pages contribute no
// tokens; extraction continues with reduced recall.
type PageResult struct {
	Page     int
	Blocks   []entity.TextBlock
	Attempts int
	Failed   bool
	Err      error
}

type Engine struct {
	cfg    Config
	runner runner.Runner
	sem    *semaphore.Weighted
	logger *slog.Logger
}

func NewEngine(cfg Config, r runner.Runner, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if r == nil {
		r = runner.Exec()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 2
	}
	return &Engine{
		cfg:    cfg,
		runner: r,
		sem:    semaphore.NewWeighted(int64(cfg.Concurrency)),
		logger: logger,
	}
}

// RecognizePage renders one page and recognizes it, retrying transient
// failures with exponential backoff. Exhausting retries returns a failed
// PageResult wrapping ErrPageOCRFailed; it never returns an error that
// would abort the document.
func (e *Engine) RecognizePage(ctx context.Context, path string, pageIdx int, pageW, pageH float64) PageResult {
	res := PageResult{Page: pageIdx}
	backoff := e.cfg.Backoff

	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		res.Attempts = attempt + 1
		blocks, err := e.recognizeOnce(ctx, path, pageIdx, pageW, pageH)
		if err == nil {
			res.Blocks = blocks
			e.logger.Debug("ocr.page.ok", "path", path, "page", pageIdx, "attempts", res.Attempts, "blocks", len(blocks))
			return res
		}
		if ctx.Err() != nil {
			// cancelled documents stop here; no point burning retries
			res.Failed = true
			res.Err = ctx.Err()
			return res
		}
		res.Err = err
		e.logger.Warn("ocr.page.retry", "path", path, "page", pageIdx, "attempt", attempt+1, "error", err)
		if attempt < e.cfg.MaxRetries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				res.Failed = true
				res.Err = ctx.Err()
				return res
			}
			backoff *= 2
		}
	}

	res.Failed = true
	res.Err = common.NewAppError("PAGE_OCR_FAILED",
		fmt.Sprintf("page %d: recognition failed after %d attempts", pageIdx, res.Attempts),
		common.ErrPageOCRFailed)
	e.logger.Error("ocr.page.failed", "path", path, "page", pageIdx, "attempts", res.Attempts, "error", res.Err)
	return res
}

// recognizeOnce holds a recognition slot for the render+recognize pair.
func (e *Engine) recognizeOnce(ctx context.Context, path string, pageIdx int, pageW, pageH float64) ([]entity.TextBlock, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	img, cleanup, err := e.renderPage(ctx, path, pageIdx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.tesseractTSV(ctx, img, pageIdx, pageW, pageH)
}

// renderPage rasterizes a single 0-based page to a temp PNG.
func (e *Engine) renderPage(ctx context.Context, path string, pageIdx int) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "sds-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	prefix := filepath.Join(tmpDir, "page")
	pageNo := fmt.Sprintf("%d", pageIdx+1)
	// pdftoppm -r <dpi> -f <n> -l <n> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI), "-f", pageNo, "-l", pageNo, "-png", path, prefix)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm: %s: %w", truncateStderr(errb), err)
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm produced no image for page %d", pageIdx)
	}
	return matches[0], cleanup, nil
}

func truncateStderr(b []byte) string {
	const max = 512
	s := string(b)
	if len(s) > max {
		return s[:max] + "...(truncated)"
	}
	return s
}
