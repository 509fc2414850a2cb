package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/common"
)

// pageExtractTimeout bounds embedded-text extraction per page; the underlying
// reader can spin on pathological content streams.
const pageExtractTimeout = 10 * time.Second

func (e *Extractor) extractPDF(ctx context.Context, doc Document) (ExtractionResult, error) {
	res := ExtractionResult{Format: constants.PDF, Method: MethodPDFText}

	rdr, err := openPDF(doc.Content)
	if err != nil {
		e.logger.Error("pdf decode failed", "filename", doc.Filename, "error", err)
		return res, common.NewAppError("PDF_DECODE", err.Error(), common.ErrDecodeFailure)
	}

	total := rdr.NumPage()
	res.Pages = total
	pageTexts := make([]string, total+1)
	hasEmbedded := false
	var needOCR []int

	for i := 1; i <= total; i++ {
		page := rdr.Page(i)
		if page.V.IsNull() {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: null page object", i))
			continue
		}
		text, err := pageText(page)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, err))
			text = ""
		}
		if strings.TrimSpace(text) != "" {
			// Mixed pages keep their embedded layer; OCR applies only to
			// pages whose text layer is empty.
			pageTexts[i] = text
			hasEmbedded = true
			continue
		}
		if !e.ocrEnabled() {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: no text layer, ocr disabled", i))
			continue
		}
		needOCR = append(needOCR, i)
	}

	if len(needOCR) > 0 {
		e.ocrPages(ctx, &res, doc.Content, needOCR, pageTexts)
	}

	var b strings.Builder
	for i := 1; i <= total; i++ {
		if pageTexts[i] != "" {
			b.WriteString(pageTexts[i])
			b.WriteString("\n")
		}
	}
	res.Text = b.String()
	if !hasEmbedded && e.ocrEnabled() {
		res.Method = MethodPDFOCR
	}
	return res, nil
}

// ocrPages renders the given pages and routes each through the recognizer,
// filling pageTexts in place so page order is preserved.
func (e *Extractor) ocrPages(ctx context.Context, res *ExtractionResult, content []byte, pages []int, pageTexts []string) {
	rendered, cleanup, err := e.renderPages(ctx, content)
	if err != nil {
		e.logger.Warn("page rendering failed", "error", err)
		res.Warnings = append(res.Warnings, "render: "+err.Error())
		return
	}
	defer cleanup()

	for _, i := range pages {
		path, ok := rendered[i]
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: not rendered", i))
			continue
		}
		img, err := os.ReadFile(path)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		pageTexts[i] = e.recognize(ctx, res, fmt.Sprintf("page %d", i), img)
	}
}

// openPDF builds a reader over in-memory bytes. The underlying parser panics
// on some malformed files; that surfaces here as a decode error.
func openPDF(content []byte) (rdr *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdf reader panic: %v", p)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

// pageText extracts the embedded text layer grouped by visual row, so
// columnar resumes keep left-to-right token order as separate lines.
func pageText(page pdf.Page) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- result{err: fmt.Errorf("page text panic: %v", p)}
			}
		}()
		rows, err := page.GetTextByRow()
		if err != nil {
			ch <- result{err: err}
			return
		}
		var b strings.Builder
		for ri, row := range rows {
			if ri > 0 {
				b.WriteByte('\n')
			}
			for wi, word := range row.Content {
				if wi > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(word.S)
			}
		}
		ch <- result{text: b.String()}
	}()

	select {
	case r := <-ch:
		return r.text, r.err
	case <-time.After(pageExtractTimeout):
		return "", errors.New("page text extraction timed out")
	}
}
