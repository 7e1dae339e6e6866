// Package ingest turns a raw SDS document into pages of classified,
// position-tagged native text. Scanned pages come out empty here; the OCR
// stage fills them in later.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/runner"
)

type Config struct {
	Pdfinfo   string // binary name or absolute path; if empty -> "pdfinfo"
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdfimages string // binary name or absolute path; if empty -> "pdfimages"

	// ScannedCoverageMax: a page is SCANNED when native text covers less
	// than this fraction of the page area.
	ScannedCoverageMax float64
}

type Ingestor struct {
	cfg    Config
	runner runner.Runner
	logger *slog.Logger
}

func NewIngestor(cfg Config, r runner.Runner, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if r == nil {
		r = runner.Exec()
	}
	if cfg.Pdfinfo == "" {
		cfg.Pdfinfo = "pdfinfo"
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdfimages == "" {
		cfg.Pdfimages = "pdfimages"
	}
	if cfg.ScannedCoverageMax <= 0 {
		cfg.ScannedCoverageMax = 0.05
	}
	return &Ingestor{cfg: cfg, runner: r, logger: logger}
}

var rePages = regexp.MustCompile(`(?m)^Pages:\s+(\d+)`)

// DocumentID derives the stable identity of a document from its source
// path, so repeated runs over the same input produce identical records.
func DocumentID(path string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("sds:"+path))
}

// Ingest validates the document container, extracts native text blocks with
// bounding boxes, and classifies every page. A container-level failure
// (corrupted header, zero pages) returns an UnreadableDocumentError, fatal
// for this document only.
func (g *Ingestor) Ingest(ctx context.Context, path string) (*entity.Document, error) {
	out, errb, err := g.runner.Run(ctx, g.cfg.Pdfinfo, path)
	if err != nil {
		return nil, common.UnreadableDocumentError(
			fmt.Sprintf("%s: not a readable document container (%s)", path, strings.TrimSpace(string(errb))), err)
	}
	m := rePages.FindSubmatch(out)
	if m == nil {
		return nil, common.UnreadableDocumentError(fmt.Sprintf("%s: no page count in document info", path), nil)
	}
	pageCount, _ := strconv.Atoi(string(m[1]))
	if pageCount == 0 {
		return nil, common.UnreadableDocumentError(fmt.Sprintf("%s: document has zero pages", path), nil)
	}

	pages, err := g.nativePages(ctx, path, pageCount)
	if err != nil {
		return nil, err
	}

	imaged, err := g.pagesWithImages(ctx, path)
	if err != nil {
		// pdfimages failing is not fatal: classification falls back to
		// coverage alone.
		g.logger.Warn("ingest.pdfimages.failed", "path", path, "error", err)
		imaged = nil
	}

	for i := range pages {
		p := &pages[i]
		coverage := textCoverage(p)
		switch {
		case coverage < g.cfg.ScannedCoverageMax:
			p.Class = constants.PageScanned
		case imaged[p.Index]:
			p.Class = constants.PageMixed
		default:
			p.Class = constants.PageNative
		}
		g.logger.Debug("ingest.page.classified",
			"path", path, "page", p.Index, "class", p.Class,
			"coverage", coverage, "blocks", len(p.Blocks))
	}

	doc := &entity.Document{
		ID:         DocumentID(path),
		SourcePath: path,
		PageCount:  pageCount,
		Pages:      pages,
	}
	g.logger.Info("ingest.ok", "path", path, "pages", pageCount, "doc_id", doc.ID)
	return doc, nil
}

// Spool writes a byte payload to a temp file so the external tools can
// read it. The cleanup func removes the file; callers keep it alive for as
// long as any later stage (OCR rasterization) still needs the bytes.
func Spool(payload []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "sds-doc-*.pdf")
	if err != nil {
		return "", nil, common.WrapError(err, "spool document")
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := f.Write(payload); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, common.WrapError(err, "spool document")
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, common.WrapError(err, "spool document")
	}
	return f.Name(), cleanup, nil
}

// PayloadID derives a stable document identity from raw content, used when
// a document arrives as bytes and has no meaningful path.
func PayloadID(payload []byte) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, append([]byte("sds-bytes:"), payload...))
}

// nativePages runs pdftotext in bbox mode and folds the word boxes into
// line-level blocks per page.
func (g *Ingestor) nativePages(ctx context.Context, path string, pageCount int) ([]entity.Page, error) {
	// pdftotext -bbox <path> -
	out, errb, err := g.runner.Run(ctx, g.cfg.Pdftotext, "-bbox", path, "-")
	if err != nil {
		return nil, common.UnreadableDocumentError(
			fmt.Sprintf("%s: text layer unreadable (%s)", path, strings.TrimSpace(string(errb))), err)
	}
	pages, err := parseBBox(out)
	if err != nil {
		return nil, common.UnreadableDocumentError(fmt.Sprintf("%s: malformed bbox output", path), err)
	}
	// pdfinfo's page count is authoritative; pad pages the bbox pass missed.
	for len(pages) < pageCount {
		pages = append(pages, entity.Page{Index: len(pages)})
	}
	if len(pages) > pageCount {
		pages = pages[:pageCount]
	}
	return pages, nil
}

// pagesWithImages returns the set of 0-based page indexes that carry at
// least one embedded image, per pdfimages -list.
func (g *Ingestor) pagesWithImages(ctx context.Context, path string) (map[int]bool, error) {
	out, _, err := g.runner.Run(ctx, g.cfg.Pdfimages, "-list", path)
	if err != nil {
		return nil, err
	}
	imaged := make(map[int]bool)
	for i, line := range strings.Split(string(out), "\n") {
		if i < 2 { // header + separator
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if n, err := strconv.Atoi(fields[0]); err == nil && n >= 1 {
			imaged[n-1] = true
		}
	}
	return imaged, nil
}

// textCoverage estimates the fraction of the page area covered by native
// word boxes.
func textCoverage(p *entity.Page) float64 {
	area := p.Width * p.Height
	if area <= 0 {
		return 0
	}
	var covered float64
	for _, b := range p.Blocks {
		for _, t := range b.Tokens {
			covered += t.Box.Area()
		}
	}
	return covered / area
}
