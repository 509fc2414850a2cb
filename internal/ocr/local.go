package ocr

import (
	"context"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/hirestack/cv-parser/internal/common"
	"github.com/hirestack/cv-parser/internal/metrics"
)

// Tesseract is the local recognizer: deterministic, offline, no credentials.
// A fresh gosseract client is created per call so concurrent use is safe.
type Tesseract struct {
	logger *slog.Logger
}

func NewTesseract(logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tesseract{logger: logger}
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte, languages []string) (_ string, err error) {
	defer func() { metrics.ObserveOCRRequest("tesseract", err) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() {
		if cerr := client.Close(); cerr != nil {
			t.logger.Warn("tesseract client close failed", "error", cerr)
		}
	}()

	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return "", common.WrapError(err, "set languages")
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", common.WrapError(err, "set image")
	}

	text, err := client.Text()
	if err != nil {
		return "", common.NewAppError("TESSERACT_ERROR", "recognize text", err)
	}
	return strings.TrimSpace(text), nil
}
