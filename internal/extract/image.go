package extract

import (
	"context"

	"github.com/hirestack/cv-parser/constants"
)

// extractImage hands the whole file to the OCR bridge. There is no text-layer
// fallback for standalone images; with OCR disabled the document simply
// yields no text.
func (e *Extractor) extractImage(ctx context.Context, doc Document) (ExtractionResult, error) {
	res := ExtractionResult{Format: constants.IMAGE, Method: MethodImageOCR, Pages: 1}

	if !e.ocrEnabled() {
		res.Warnings = append(res.Warnings, "image document, ocr disabled")
		return res, nil
	}

	res.Text = e.recognize(ctx, &res, doc.Filename, doc.Content)
	return res, nil
}
