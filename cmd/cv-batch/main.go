package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/common"
	"github.com/hirestack/cv-parser/internal/export"
	"github.com/hirestack/cv-parser/internal/extract"
	"github.com/hirestack/cv-parser/internal/ingest"
	"github.com/hirestack/cv-parser/internal/ocr"
	"github.com/hirestack/cv-parser/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir     = flag.String("dir", "", "directory of resumes to process (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "extracted_cv_data.xlsx")
	}

	// Setup logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration (.env is optional for local runs)
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Wire the pipeline: recognizer -> text source adapter -> orchestrator
	recognizer, err := ocr.FromConfig(cfg.OCR, logger)
	if err != nil {
		logger.Error("failed to build recognizer", "error", err)
		os.Exit(1)
	}
	extractor := extract.NewExtractor(extract.Config{
		Pdftoppm:   cfg.Extract.Pdftoppm,
		DPI:        cfg.Extract.PDFRenderDPI,
		MaxPages:   cfg.Extract.MaxPages,
		OCREnabled: cfg.OCR.Mode != common.OCRModeDisabled,
		Languages:  cfg.OCR.LanguageHints(),
	}, recognizer, logger)
	proc := pipeline.NewProcessor(extractor, cfg.Extract.MaxFileSizeBytes, logger)
	exporter := export.NewService(logger)

	docs, err := ingest.LoadDirectory(*dir, logger)
	if err != nil {
		logger.Error("failed to read input directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		printError("No supported documents found in %s\n", *dir)
		os.Exit(1)
	}

	res := proc.ProcessBatch(ctx, docs)

	// Every per-document problem is reported individually.
	for _, rec := range res.Failures() {
		printError("%s: %s (%s)\n", rec.SourceFile, rec.Note, rec.Status)
	}

	data, err := exporter.WriteXLSX(res)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}

	ok := 0
	for _, rec := range res.Records {
		if rec.Status == constants.RecordStatusOK {
			ok++
		}
	}
	fmt.Printf("Processed %d documents (%d ok, %d failed), wrote %s\n",
		len(res.Records), ok, len(res.Records)-ok, *out)
}
