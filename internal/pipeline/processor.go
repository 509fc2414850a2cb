// Package pipeline coordinates text extraction then field extraction per
// document, collecting one record per input in input order. A failure on one
// document is reported on its record and never aborts the batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/extract"
	"github.com/hirestack/cv-parser/internal/fields"
	"github.com/hirestack/cv-parser/internal/metrics"
)

// TextExtractor is stage 1: document -> text.
type TextExtractor interface {
	Extract(ctx context.Context, doc extract.Document) (extract.ExtractionResult, error)
}

// Record is one row of a batch result.
type Record struct {
	fields.ContactRecord
	Status   constants.RecordStatus
	Note     string // failure reason, empty on success
	Method   string
	Warnings []string
}

// BatchResult holds ordered records, one per input document.
type BatchResult struct {
	ID      uuid.UUID
	Records []Record
}

// Failures returns the records that did not complete normally.
func (r BatchResult) Failures() []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Status != constants.RecordStatusOK {
			out = append(out, rec)
		}
	}
	return out
}

// Processor is the batch orchestrator.
type Processor struct {
	Logger    *slog.Logger
	Extractor TextExtractor

	// MaxFileSize is the per-document byte ceiling; oversize documents are
	// rejected before extraction begins.
	MaxFileSize int64

	strict  *fields.Extractor
	lenient *fields.Extractor
}

func NewProcessor(tx TextExtractor, maxFileSize int64, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxFileSize <= 0 {
		maxFileSize = 10 << 20
	}
	return &Processor{
		Logger:      logger,
		Extractor:   tx,
		MaxFileSize: maxFileSize,
		strict:      fields.NewExtractor(fields.DefaultPolicy(), logger),
		lenient:     fields.NewExtractor(fields.LenientPolicy(), logger),
	}
}

// ProcessBatch runs the per-document pipeline over docs and returns one
// record per document in input order. Context cancellation stops issuing
// further per-document work; already-produced records are kept and the
// remainder are marked skipped.
func (p *Processor) ProcessBatch(ctx context.Context, docs []extract.Document) BatchResult {
	res := BatchResult{ID: uuid.New(), Records: make([]Record, 0, len(docs))}

	for _, doc := range docs {
		if ctx.Err() != nil {
			rec := Record{Status: constants.RecordStatusSkipped, Note: "batch canceled"}
			rec.SourceFile = SanitizeFilename(doc.Filename)
			res.Records = append(res.Records, rec)
			metrics.ObserveDocument(string(rec.Status))
			continue
		}
		res.Records = append(res.Records, p.processOne(ctx, doc))
	}

	failed := len(res.Failures())
	p.Logger.Info("batch complete",
		"batch_id", res.ID,
		"documents", len(docs),
		"failed", failed,
	)
	return res
}

func (p *Processor) processOne(ctx context.Context, doc extract.Document) Record {
	name := SanitizeFilename(doc.Filename)
	rec := Record{Status: constants.RecordStatusOK}
	rec.SourceFile = name

	if int64(len(doc.Content)) > p.MaxFileSize {
		rec.Status = constants.RecordStatusTooLarge
		rec.Note = fmt.Sprintf("document is %d bytes, ceiling is %d", len(doc.Content), p.MaxFileSize)
		p.Logger.Warn("document rejected before extraction", "file", name, "reason", rec.Note)
		metrics.ObserveDocument(string(rec.Status))
		return rec
	}

	res, err := p.extractGuarded(ctx, doc)
	if err != nil {
		rec.Status = constants.RecordStatusFailed
		rec.Note = err.Error()
		p.Logger.Error("document failed", "file", name, "error", err)
		metrics.ObserveDocument(string(rec.Status))
		return rec
	}
	rec.Method = res.Method
	rec.Warnings = res.Warnings

	// All-OCR text gets the lenient heuristics, embedded text the strict ones.
	ex := p.strict
	if res.FromOCROnly() {
		ex = p.lenient
	}
	contact := ex.Extract(res.Text)
	contact.SourceFile = name
	rec.ContactRecord = contact

	observeFields(contact)
	metrics.ObserveDocument(string(rec.Status))
	p.Logger.Info("document processed",
		"file", name,
		"method", res.Method,
		"warnings", len(res.Warnings),
		"all_absent", contact.Absent(),
	)
	return rec
}

// extractGuarded isolates the per-document pipeline: both returned errors and
// panics from malformed inputs are converted into a regular error.
func (p *Processor) extractGuarded(ctx context.Context, doc extract.Document) (res extract.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panic: %v", r)
		}
	}()
	return p.Extractor.Extract(ctx, doc)
}

func observeFields(rec fields.ContactRecord) {
	if rec.Name != nil {
		metrics.ObserveFieldFound("name")
	}
	if rec.Email != nil {
		metrics.ObserveFieldFound("email")
	}
	if rec.Phone != nil {
		metrics.ObserveFieldFound("phone")
	}
}
