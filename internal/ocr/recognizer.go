// Package ocr is the bridge between the text source adapter and an OCR
// backend. Two interchangeable recognizers are provided: a local
// Tesseract-backed one and a remote HTTP one. Callers treat any recognizer
// error as "no text recognized" and degrade to an empty result; a recognizer
// failure never aborts a batch.
package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirestack/cv-parser/internal/common"
)

// Recognizer turns a raster image into raw recognized text. Language hints are
// passed through to the backend untouched; implementations do not post-process
// the returned text beyond byte decoding and trimming.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, languages []string) (string, error)
}

// FromConfig builds the configured recognizer, or nil when OCR is disabled.
func FromConfig(cfg common.OCRConfig, logger *slog.Logger) (Recognizer, error) {
	var rec Recognizer
	switch cfg.Mode {
	case common.OCRModeDisabled, "":
		return nil, nil
	case common.OCRModeLocal:
		rec = NewTesseract(logger)
	case common.OCRModeRemote:
		rec = NewRemoteClient(RemoteConfig{
			Endpoint:          cfg.Endpoint,
			APIKey:            cfg.APIKey,
			Timeout:           cfg.Timeout,
			MaxPayloadBytes:   cfg.MaxPayloadBytes,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown ocr mode: %q", cfg.Mode)
	}
	if cfg.Preprocess {
		rec = WithPreprocessing(rec, logger)
	}
	return rec, nil
}
