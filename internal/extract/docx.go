package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/common"
)

// Minimal mapping of WordprocessingML. Namespace prefixes are ignored by
// encoding/xml, so "p" matches "w:p". Body paragraphs and tables are separate
// fields: table-cell text is appended after all paragraph text, row-major in
// table order.
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Runs  []docxRun  `xml:"r"`
	Links []docxLink `xml:"hyperlink"`
}

type docxLink struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Texts []string `xml:"t"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paragraphs []docxParagraph `xml:"p"`
}

func (p docxParagraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			b.WriteString(t)
		}
	}
	for _, l := range p.Links {
		for _, r := range l.Runs {
			for _, t := range r.Texts {
				b.WriteString(t)
			}
		}
	}
	return b.String()
}

func (e *Extractor) extractDocx(ctx context.Context, doc Document) (ExtractionResult, error) {
	res := ExtractionResult{Format: constants.DOCX, Method: MethodDocxText, Pages: 1}

	zr, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		e.logger.Error("docx decode failed", "filename", doc.Filename, "error", err)
		return res, common.NewAppError("DOCX_DECODE", err.Error(), common.ErrDecodeFailure)
	}

	raw, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return res, common.NewAppError("DOCX_DECODE", err.Error(), common.ErrDecodeFailure)
	}

	var parsed docxDocument
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return res, common.NewAppError("DOCX_DECODE", err.Error(), common.ErrDecodeFailure)
	}

	var b strings.Builder
	for _, p := range parsed.Body.Paragraphs {
		b.WriteString(p.text())
		b.WriteString("\n")
	}
	for _, tbl := range parsed.Body.Tables {
		for _, row := range tbl.Rows {
			for _, cell := range row.Cells {
				for i, p := range cell.Paragraphs {
					if i > 0 {
						b.WriteString("\n")
					}
					b.WriteString(p.text())
				}
				b.WriteString("\n")
			}
		}
	}

	if e.ocrEnabled() {
		e.ocrEmbeddedImages(ctx, &res, zr, &b)
	}

	res.Text = b.String()
	return res, nil
}

// ocrEmbeddedImages routes word/media images through the recognizer and
// appends whatever text returns after the document text.
func (e *Extractor) ocrEmbeddedImages(ctx context.Context, res *ExtractionResult, zr *zip.Reader, b *strings.Builder) {
	var names []string
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "word/media/") {
			continue
		}
		switch constants.NormalizeExt(path.Ext(f.Name)) {
		case "png", "jpg", "jpeg":
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		img, err := readZipFile(zr, name)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if text := e.recognize(ctx, res, name, img); strings.TrimSpace(text) != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
