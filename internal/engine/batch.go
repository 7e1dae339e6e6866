package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/chemtrack/sds-extractor/internal/entity"
	"github.com/chemtrack/sds-extractor/internal/ingest"
)

// BatchItem is one submitted document. An empty Template falls back to the
// batch default, then to the registry default.
type BatchItem struct {
	Path     string
	Template string
}

// ExtractBatch processes documents on a bounded worker pool and returns one
// outcome per item in submission order, independent of completion order.
// Template versions are resolved before any document is touched: a bad
// template fails the whole batch fast rather than producing garbage
// records. Per-document failures land in that item's outcome and never
// affect siblings.
func (e *Engine) ExtractBatch(ctx context.Context, items []BatchItem, defaultTemplate string) ([]entity.Outcome, error) {
	for _, item := range items {
		version := item.Template
		if version == "" {
			version = defaultTemplate
		}
		if _, err := e.registry.Get(version); err != nil {
			return nil, err
		}
	}

	outcomes := make([]entity.Outcome, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Batch.Workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			version := item.Template
			if version == "" {
				version = defaultTemplate
			}
			rec, err := e.ExtractFile(ctx, item.Path, version)
			out := entity.Outcome{
				DocumentID: ingest.DocumentID(item.Path),
				SourcePath: item.Path,
			}
			if err != nil {
				out.Err = err
				out.ErrMessage = err.Error()
				e.logger.Error("engine.document.failed", "path", item.Path, "error", err)
			} else {
				out.Record = rec
			}
			outcomes[i] = out
			// per-document faults become outcomes, not group errors, so one
			// bad document cannot cancel its siblings
			return nil
		})
	}

	_ = g.Wait()
	e.logger.Info("engine.batch.done", "documents", len(items), "workers", e.cfg.Batch.Workers)
	return outcomes, nil
}

// ListDocuments enumerates extractable documents under a directory root in
// stable sorted order.
func ListDocuments(root string) ([]string, error) {
	return ingest.ListDocuments(root)
}
