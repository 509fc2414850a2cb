package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var documentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cvparser_documents_processed_total",
	Help: "Documents processed, labelled by terminal status",
}, []string{"status"})

var ocrRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cvparser_ocr_requests_total",
	Help: "OCR bridge calls, labelled by backend and outcome",
}, []string{"backend", "outcome"})

var fieldsFound = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cvparser_fields_found_total",
	Help: "Contact fields located by the heuristics, labelled by field",
}, []string{"field"})

func ObserveDocument(status string) {
	documentsProcessed.WithLabelValues(status).Inc()
}

func ObserveOCRRequest(backend string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ocrRequests.WithLabelValues(backend, outcome).Inc()
}

func ObserveFieldFound(field string) {
	fieldsFound.WithLabelValues(field).Inc()
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
