package extract

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lu4p/cat"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/common"
)

// extractPlain handles text-bearing formats without page structure: raw .txt
// is decoded directly, .odt and .rtf go through the cat converter. The
// converter works on paths, so the bytes are staged in a temp file.
func (e *Extractor) extractPlain(ctx context.Context, doc Document, ext string) (ExtractionResult, error) {
	res := ExtractionResult{Format: constants.TEXT, Method: MethodPlainText, Pages: 1}

	if ext == "txt" {
		res.Text = string(doc.Content)
		return res, nil
	}

	tmpDir, err := os.MkdirTemp("", "cvp-txt-*")
	if err != nil {
		return res, common.WrapError(err, "stage temp file")
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", err)
		}
	}()

	path := filepath.Join(tmpDir, "doc."+ext)
	if err := os.WriteFile(path, doc.Content, 0o600); err != nil {
		return res, common.WrapError(err, "stage temp file")
	}

	text, err := cat.File(path)
	if err != nil {
		e.logger.Error("text conversion failed", "filename", doc.Filename, "error", err)
		return res, common.NewAppError("TEXT_DECODE", err.Error(), common.ErrDecodeFailure)
	}
	res.Text = text
	return res, nil
}
