// templatecheck validates template definition files without running the
// engine, so template authors get fast feedback before a batch ever
// starts.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chemtrack/sds-extractor/internal/template"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

func main() {
	vocabPath := flag.String("vocab", "", "YAML vocabulary override file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: templatecheck [--vocab file] <template.json|dir> ...")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	v, err := vocab.Load(*vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vocabulary: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, arg := range flag.Args() {
		for _, path := range expand(arg) {
			// a fresh registry per file isolates duplicate-version checks
			registry, err := template.NewRegistry(v, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed++
				continue
			}
			if err := registry.LoadFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func expand(arg string) []string {
	info, err := os.Stat(arg)
	if err != nil || !info.IsDir() {
		return []string{arg}
	}
	matches, _ := filepath.Glob(filepath.Join(arg, "*.json"))
	return matches
}
