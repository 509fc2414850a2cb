package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/common"
	"github.com/hirestack/cv-parser/internal/ocr"
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"

	DPI      int // rasterization DPI for pages without a text layer, default 300
	MaxPages int // 0 = no limit

	// OCREnabled selects the fallback policy for pages and images without an
	// embedded text layer: when false such units are skipped with a warning,
	// when true they are routed through the recognizer.
	OCREnabled bool
	Languages  []string
}

// Extractor is the text source adapter: document bytes in, flat text out.
// Single page or paragraph failures are absorbed into warnings; only a
// structural decode failure of the whole document is returned as an error.
type Extractor struct {
	cfg    Config
	rec    ocr.Recognizer
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, rec ocr.Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if rec == nil {
		cfg.OCREnabled = false
	}
	return &Extractor{cfg: cfg, rec: rec, runner: execRunner{logger: logger}, logger: logger}
}

func (e *Extractor) ocrEnabled() bool {
	return e.cfg.OCREnabled && e.rec != nil
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, doc Document) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(doc.Filename))
	e.logger.Debug("starting text extraction", "filename", doc.Filename, "ext", ext, "bytes", len(doc.Content))

	var res ExtractionResult
	var err error
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, doc)
	case constants.DOCX:
		res, err = e.extractDocx(ctx, doc)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, doc)
	case constants.TEXT:
		res, err = e.extractPlain(ctx, doc, ext)
	default:
		e.logger.Error("unsupported extension", "extension", ext)
		return ExtractionResult{}, common.NewAppError("UNSUPPORTED_FORMAT", ext, common.ErrUnsupportedFormat)
	}
	res.Duration = time.Since(start)
	return res, err
}

// recognize routes one image through the bridge, degrading failure to an
// empty string plus a warning on the result.
func (e *Extractor) recognize(ctx context.Context, res *ExtractionResult, unit string, image []byte) string {
	text, err := e.rec.Recognize(ctx, image, e.cfg.Languages)
	if err != nil {
		e.logger.Warn("ocr failed", "unit", unit, "error", err)
		res.Warnings = append(res.Warnings, unit+": "+err.Error())
		return ""
	}
	return text
}
