package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/engine"
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
		file      = flag.String("file", "", "SDS document to extract (required)")
		tplVer    = flag.String("template", "", "template version id, e.g. standard-ghs@1 (defaults to builtin)")
		tplDir    = flag.String("templates", "", "directory of template JSON files to load")
		vocabPath = flag.String("vocab", "", "YAML vocabulary override file")
		out       = flag.String("out", "", "output JSON path (defaults to stdout)")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
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

	rec, err := eng.ExtractFile(ctx, *file, *tplVer)
	if err != nil {
		logger.Error("extraction failed", "file", *file, "error", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("failed to encode record", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		fmt.Println(string(payload))
		return
	}
	if err := os.WriteFile(*out, payload, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("extraction complete",
		"file", *file,
		"template", rec.TemplateVersion,
		"overall_confidence", rec.OverallConfidence,
		"needs_review", rec.NeedsReview,
		"out", *out)
}
