package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/engine"
	"github.com/chemtrack/sds-extractor/internal/export"
	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of SDS documents to process (required)")
		out       = flag.String("out", "", "output XLSX path (defaults to <dir>/../sds-records.xlsx)")
		csvOut    = flag.String("csv", "", "optional CSV output path")
		tplVer    = flag.String("template", "", "template version id applied to the whole batch")
		tplDir    = flag.String("templates", "", "directory of template JSON files to load")
		vocabPath = flag.String("vocab", "", "YAML vocabulary override file")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "sds-records.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	v, err := vocab.Load(*vocabPath)
	if err != nil {
		logger.Error("failed to load vocabulary", "error", err)
		os.Exit(1)
	}
	registry, err := template.NewRegistry(v, logger)
	if err != nil {
		logger.Error("failed to build template registry", "error", err)
		os.Exit(1)
	}
	if *tplDir != "" {
		if err := registry.LoadDir(*tplDir); err != nil {
			logger.Error("failed to load templates", "dir", *tplDir, "error", err)
			os.Exit(1)
		}
	}

	eng := engine.New(cfg, registry, v, nil, logger)

	paths, err := engine.ListDocuments(*dir)
	if err != nil {
		logger.Error("failed to list documents", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Warn("no documents found", "dir", *dir)
		return
	}

	items := make([]engine.BatchItem, len(paths))
	for i, p := range paths {
		items[i] = engine.BatchItem{Path: p}
	}

	logger.Info("starting batch", "dir", *dir, "documents", len(items), "workers", cfg.Batch.Workers)
	outcomes, err := eng.ExtractBatch(ctx, items, *tplVer)
	if err != nil {
		// a bad template fails the batch before any document is touched
		logger.Error("batch aborted", "error", err)
		os.Exit(1)
	}

	extracted := 0
	failures := 0
	review := 0
	for _, o := range outcomes {
		switch {
		case o.Record == nil:
			failures++
		case o.Record.NeedsReview:
			extracted++
			review++
		default:
			extracted++
		}
	}

	tpl, err := registry.Get(*tplVer)
	if err != nil {
		logger.Error("failed to resolve template", "error", err)
		os.Exit(1)
	}

	xlsxBytes, err := export.RecordsXLSX(tpl, outcomes, logger)
	if err != nil {
		logger.Error("failed to render workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}

	if *csvOut != "" {
		f, err := os.Create(*csvOut)
		if err != nil {
			logger.Error("failed to create CSV file", "path", *csvOut, "error", err)
			os.Exit(1)
		}
		if err := export.RecordsCSV(f, tpl, outcomes); err != nil {
			_ = f.Close()
			logger.Error("failed to write CSV", "path", *csvOut, "error", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			logger.Error("failed to close CSV file", "path", *csvOut, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch processing complete",
		"documents", len(outcomes),
		"extracted", extracted,
		"failures", failures,
		"needs_review", review,
		"out", *out)
}
