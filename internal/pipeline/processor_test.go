package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/hirestack/cv-parser/constants"
	"github.com/hirestack/cv-parser/internal/extract"
	"github.com/hirestack/cv-parser/internal/metrics"
)

type fakeExtractor struct {
	texts   map[string]string
	methods map[string]string
	errs    map[string]error
	panicOn string
	calls   []string
}

func (f *fakeExtractor) Extract(ctx context.Context, doc extract.Document) (extract.ExtractionResult, error) {
	f.calls = append(f.calls, doc.Filename)
	if doc.Filename == f.panicOn {
		panic("malformed input")
	}
	if err, ok := f.errs[doc.Filename]; ok {
		return extract.ExtractionResult{}, err
	}
	method := f.methods[doc.Filename]
	if method == "" {
		method = extract.MethodPDFText
	}
	return extract.ExtractionResult{Text: f.texts[doc.Filename], Method: method}, nil
}

func TestProcessBatchPartialFailure(t *testing.T) {
	fx := &fakeExtractor{
		texts: map[string]string{
			"a.pdf": "John Smith\nEmail: john@example.com\n01012345678",
			"c.pdf": "Jane Doe\nEmail: jane@example.com\n+201012345678",
		},
		errs: map[string]error{"b.pdf": errors.New("decode failure")},
	}
	p := NewProcessor(fx, 1<<20, nil)

	docs := []extract.Document{
		{Filename: "a.pdf", Content: []byte("a")},
		{Filename: "b.pdf", Content: []byte("b")},
		{Filename: "c.pdf", Content: []byte("c")},
	}
	res := p.ProcessBatch(context.Background(), docs)

	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(res.Records))
	}
	if res.Records[0].SourceFile != "a_pdf" || res.Records[1].SourceFile != "b_pdf" || res.Records[2].SourceFile != "c_pdf" {
		t.Fatalf("row order not preserved: %+v", res.Records)
	}

	first, second, third := res.Records[0], res.Records[1], res.Records[2]
	if first.Status != constants.RecordStatusOK || *first.Name != "John Smith" || *first.Phone != "01012345678" {
		t.Fatalf("record 1 = %+v", first)
	}
	if second.Status != constants.RecordStatusFailed || !second.Absent() || second.Note == "" {
		t.Fatalf("record 2 = %+v", second)
	}
	if third.Status != constants.RecordStatusOK || *third.Email != "jane@example.com" {
		t.Fatalf("record 3 = %+v", third)
	}
	if got := len(res.Failures()); got != 1 {
		t.Fatalf("Failures() = %d, want 1", got)
	}
}

func TestProcessBatchRecoversPanics(t *testing.T) {
	fx := &fakeExtractor{panicOn: "bad.pdf"}
	p := NewProcessor(fx, 1<<20, nil)

	res := p.ProcessBatch(context.Background(), []extract.Document{
		{Filename: "bad.pdf", Content: []byte("x")},
	})
	if res.Records[0].Status != constants.RecordStatusFailed {
		t.Fatalf("record = %+v", res.Records[0])
	}
}

func TestProcessBatchOversizeRejectedBeforeExtraction(t *testing.T) {
	fx := &fakeExtractor{}
	p := NewProcessor(fx, 8, nil)

	res := p.ProcessBatch(context.Background(), []extract.Document{
		{Filename: "huge resume.pdf", Content: make([]byte, 16)},
	})

	rec := res.Records[0]
	if rec.Status != constants.RecordStatusTooLarge || !rec.Absent() || rec.Note == "" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.SourceFile != "huge_resume_pdf" {
		t.Fatalf("sanitized name = %q", rec.SourceFile)
	}
	if len(fx.calls) != 0 {
		t.Fatalf("oversize document was read by the extractor: %v", fx.calls)
	}
}

func TestProcessBatchIdempotent(t *testing.T) {
	fx := &fakeExtractor{texts: map[string]string{"a.pdf": "John Smith\nEmail: john@example.com"}}
	p := NewProcessor(fx, 1<<20, nil)
	docs := []extract.Document{{Filename: "a.pdf", Content: []byte("same bytes")}}

	first := p.ProcessBatch(context.Background(), docs).Records[0]
	second := p.ProcessBatch(context.Background(), docs).Records[0]

	if *first.Name != *second.Name || *first.Email != *second.Email {
		t.Fatalf("repeat processing differed: %+v vs %+v", first, second)
	}
}

func TestProcessBatchSelectsLenientPolicyForOCRText(t *testing.T) {
	// The header heuristic rejects a digit-bearing first line; the first-line
	// heuristic used for OCR-only text keeps it.
	text := "J0hn Sm1th\nSKILLS"
	fx := &fakeExtractor{
		texts: map[string]string{"scan.png": text, "typed.pdf": text},
		methods: map[string]string{
			"scan.png":  extract.MethodImageOCR,
			"typed.pdf": extract.MethodPDFText,
		},
	}
	p := NewProcessor(fx, 1<<20, nil)

	res := p.ProcessBatch(context.Background(), []extract.Document{
		{Filename: "scan.png", Content: []byte("x")},
		{Filename: "typed.pdf", Content: []byte("y")},
	})

	scanned, typed := res.Records[0], res.Records[1]
	if scanned.Name == nil || *scanned.Name != "J0hn Sm1th" {
		t.Fatalf("ocr record name = %v, want first-line heuristic result", scanned.Name)
	}
	if typed.Name != nil {
		t.Fatalf("embedded-text record name = %q, want absent under header heuristic", *typed.Name)
	}
}

func TestProcessBatchEmptyTextYieldsAllAbsent(t *testing.T) {
	// OCR bridge returning nothing for a fully scanned document must produce
	// a normal all-absent record, never an error.
	fx := &fakeExtractor{
		texts:   map[string]string{},
		methods: map[string]string{"scan.pdf": extract.MethodPDFOCR},
	}
	p := NewProcessor(fx, 1<<20, nil)

	res := p.ProcessBatch(context.Background(), []extract.Document{
		{Filename: "scan.pdf", Content: []byte("x")},
	})
	rec := res.Records[0]
	if rec.Status != constants.RecordStatusOK || !rec.Absent() {
		t.Fatalf("record = %+v", rec)
	}
}

// documentCount reads the processed-documents counter for one status off the
// metrics handler. Counters are process-global, so callers compare deltas.
func documentCount(t *testing.T, status constants.RecordStatus) float64 {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	prefix := `cvparser_documents_processed_total{status="` + string(status) + `"}`
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		v, err := strconv.ParseFloat(strings.Fields(line)[1], 64)
		if err != nil {
			t.Fatalf("parse metric line %q: %v", line, err)
		}
		return v
	}
	return 0
}

func TestProcessBatchCanceledContext(t *testing.T) {
	fx := &fakeExtractor{}
	p := NewProcessor(fx, 1<<20, nil)
	before := documentCount(t, constants.RecordStatusSkipped)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := p.ProcessBatch(ctx, []extract.Document{
		{Filename: "a.pdf"}, {Filename: "b.pdf"},
	})

	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	for _, rec := range res.Records {
		if rec.Status != constants.RecordStatusSkipped {
			t.Fatalf("record = %+v, want skipped", rec)
		}
	}
	if len(fx.calls) != 0 {
		t.Fatalf("extractor called after cancellation: %v", fx.calls)
	}
	if got := documentCount(t, constants.RecordStatusSkipped) - before; got != 2 {
		t.Fatalf("skipped counter grew by %v, want 2", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  John Smith CV.pdf ", "John_Smith_CV_pdf"},
		{"résumé (final).docx", "r_sum_final_docx"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
