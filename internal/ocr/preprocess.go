package ocr

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/disintegration/imaging"
)

// EnhanceForRecognition cleans up a scanned image before OCR: grayscale for
// contrast, then contrast, sharpen and brightness adjustments tuned for
// printed documents. The result is re-encoded as PNG.
func EnhanceForRecognition(image []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, err
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type preprocessed struct {
	next   Recognizer
	logger *slog.Logger
}

// WithPreprocessing wraps a recognizer so every image is enhanced before
// recognition. An image that cannot be decoded is passed through unchanged;
// the backend gets to reject it itself.
func WithPreprocessing(next Recognizer, logger *slog.Logger) Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &preprocessed{next: next, logger: logger}
}

func (p *preprocessed) Recognize(ctx context.Context, image []byte, languages []string) (string, error) {
	enhanced, err := EnhanceForRecognition(image)
	if err != nil {
		p.logger.Warn("image preprocessing failed, using original bytes", "error", err)
		enhanced = image
	}
	return p.next.Recognize(ctx, enhanced, languages)
}
