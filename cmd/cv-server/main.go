package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hirestack/cv-parser/internal/common"
	"github.com/hirestack/cv-parser/internal/export"
	"github.com/hirestack/cv-parser/internal/extract"
	"github.com/hirestack/cv-parser/internal/ocr"
	"github.com/hirestack/cv-parser/internal/pipeline"
	"github.com/hirestack/cv-parser/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load environment variables (.env is optional)
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

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

	srv := server.New(proc, exporter, cfg.Server, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
