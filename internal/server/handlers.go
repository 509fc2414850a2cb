package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/extract"
	"github.com/hirestack/cv-parser/internal/pipeline"
)

// recordRow is the JSON shape of one result row. Absent fields render as null.
type recordRow struct {
	FileName string   `json:"file_name"`
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	Status   string   `json:"status"`
	Note     string   `json:"note,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) extractJSON(c *gin.Context) {
	res, ok := s.runBatch(c)
	if !ok {
		return
	}

	rows := make([]recordRow, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, recordRow{
			FileName: rec.SourceFile,
			Name:     rec.Name,
			Email:    rec.Email,
			Phone:    rec.Phone,
			Status:   string(rec.Status),
			Note:     rec.Note,
			Warnings: rec.Warnings,
		})
	}
	c.JSON(http.StatusOK, gin.H{"batch_id": res.ID.String(), "records": rows})
}

func (s *Server) extractXLSX(c *gin.Context) {
	res, ok := s.runBatch(c)
	if !ok {
		return
	}

	data, err := s.exporter.WriteXLSX(res)
	if err != nil {
		s.logger.Error("xlsx export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="extracted_cv_data.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// upload is one multipart part: the document it yielded, or the read error
// that will become its failed row.
type upload struct {
	doc extract.Document
	err error
}

// runBatch reads the uploads, processes the readable ones, and rebuilds the
// result so the response has one row per uploaded part in upload order.
func (s *Server) runBatch(c *gin.Context) (pipeline.BatchResult, bool) {
	ups, ok := s.readUploads(c)
	if !ok {
		return pipeline.BatchResult{}, false
	}

	docs := make([]extract.Document, 0, len(ups))
	for _, up := range ups {
		if up.err == nil {
			docs = append(docs, up.doc)
		}
	}

	res := s.proc.ProcessBatch(c.Request.Context(), docs)
	return mergeUploadFailures(res, ups), true
}

// mergeUploadFailures splices a failed row into the batch result for every
// part that could not be read, preserving upload order.
func mergeUploadFailures(res pipeline.BatchResult, ups []upload) pipeline.BatchResult {
	merged := make([]pipeline.Record, 0, len(ups))
	next := 0
	for _, up := range ups {
		if up.err != nil {
			rec := pipeline.Record{
				Status: constants.RecordStatusFailed,
				Note:   "read upload: " + up.err.Error(),
			}
			rec.SourceFile = pipeline.SanitizeFilename(up.doc.Filename)
			merged = append(merged, rec)
			continue
		}
		merged = append(merged, res.Records[next])
		next++
	}
	res.Records = merged
	return res
}

// readUploads collects the multipart "files" parts in upload order. Oversize
// documents are not rejected here; the orchestrator reports them per row.
func (s *Server) readUploads(c *gin.Context) ([]upload, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid multipart form: %v", err)})
		return nil, false
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded; use multipart field 'files'"})
		return nil, false
	}

	ups := make([]upload, 0, len(files))
	for _, fh := range files {
		content, err := readUpload(fh)
		if err != nil {
			s.logger.Warn("failed to read upload", "name", fh.Filename, "error", err)
			ups = append(ups, upload{doc: extract.Document{Filename: fh.Filename}, err: err})
			continue
		}
		ups = append(ups, upload{doc: extract.Document{Filename: fh.Filename, Content: content}})
	}
	return ups, true
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
