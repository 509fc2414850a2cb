// Package export renders a batch result as an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hirestack/cv-parser/internal/pipeline"
)

const sheet = "Contacts"

// Columns are part of the output contract: one row per input document, in
// input order.
var headers = []string{"File Name", "Name", "Email", "Phone"}

// Service produces XLSX bytes for batch results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteXLSX returns a workbook (as bytes) with one row per record, preserving
// batch order. Failed documents appear as rows with empty field cells.
func (s *Service) WriteXLSX(res pipeline.BatchResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 && defIdx != activeIndex {
		_ = f.DeleteSheet("Sheet1")
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		widths[i] = len(h)
	}

	for rowIdx, rec := range res.Records {
		row := rowIdx + 2
		values := []string{
			rec.SourceFile,
			strOrEmpty(rec.Name),
			strOrEmpty(rec.Email),
			strOrEmpty(rec.Phone),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
			if len(v) > widths[col] {
				widths[col] = len(v)
			}
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, float64(w)+2)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("xlsx export complete",
		"batch_id", res.ID,
		"rows", len(res.Records),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
