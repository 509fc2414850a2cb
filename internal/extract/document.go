// Package extract converts raw resume documents (PDF, Word, image, plain
// text) into a flat text stream, routing pages without an embedded text layer
// through the OCR bridge when one is configured.
package extract

import (
	"time"

	"github.com/hirestack/cv-parser/constants"
)

// Document is an immutable input: opaque bytes plus the filename its kind is
// sniffed from.
type Document struct {
	Filename string
	Content  []byte
}

// Extraction methods.
const (
	MethodPDFText   = "pdf-text"
	MethodPDFOCR    = "pdf-ocr"
	MethodDocxText  = "docx-text"
	MethodImageOCR  = "image-ocr"
	MethodPlainText = "plain-text"
)

// ExtractionResult carries the normalized text and how it was obtained.
// Warnings accumulate per-unit failures (a page that would not parse, an OCR
// call that failed); they never abort the document.
type ExtractionResult struct {
	Text     string
	Pages    int
	Format   constants.Format
	Method   string
	Duration time.Duration
	Warnings []string
}

// FromOCROnly reports whether every recovered line came from OCR rather than
// an embedded text layer. The orchestrator selects the lenient field
// heuristics for such documents.
func (r ExtractionResult) FromOCROnly() bool {
	return r.Method == MethodImageOCR || r.Method == MethodPDFOCR
}
