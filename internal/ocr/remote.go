package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hirestack/cv-parser/internal/common"
	"github.com/hirestack/cv-parser/internal/metrics"
)

// RemoteConfig configures the remote recognizer. Endpoint and APIKey are
// required; the rest defaults to conservative values.
type RemoteConfig struct {
	Endpoint          string
	APIKey            string
	Timeout           time.Duration
	MaxPayloadBytes   int64
	RequestsPerSecond float64
	Burst             int
}

// RemoteClient calls a third-party OCR HTTP service. The service has its own
// rate limits and payload caps, so the client enforces both on its side and
// carries an explicit per-call timeout.
type RemoteClient struct {
	cfg     RemoteConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewRemoteClient(cfg RemoteConfig, logger *slog.Logger) *RemoteClient {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxPayloadBytes <= 0 {
		cfg.MaxPayloadBytes = 1 << 20
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &RemoteClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logger,
	}
}

// remoteResponse is the shape of the service's JSON body. Only the first
// parsed result carries the recognized text.
type remoteResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"` // string or array depending on failure
}

// Recognize posts a PNG-encoded image and returns the recognized text. A
// missing or empty results array means "no text recognized" and is not an
// error; transport and service failures are.
func (c *RemoteClient) Recognize(ctx context.Context, image []byte, languages []string) (_ string, err error) {
	defer func() { metrics.ObserveOCRRequest("remote", err) }()

	if int64(len(image)) > c.cfg.MaxPayloadBytes {
		return "", common.NewAppError("OCR_PAYLOAD_TOO_LARGE",
			fmt.Sprintf("image is %d bytes, cap is %d", len(image), c.cfg.MaxPayloadBytes),
			common.ErrOCRService)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", common.WrapError(err, "ocr rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, contentType, err := encodeForm(image, c.cfg.APIKey, languages)
	if err != nil {
		return "", common.WrapError(err, "encode ocr request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, body)
	if err != nil {
		return "", common.WrapError(err, "build ocr request")
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", common.NewAppError("OCR_TRANSPORT_ERROR", "ocr request failed", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("ocr response body close failed", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", common.NewAppError("OCR_STATUS_ERROR",
			fmt.Sprintf("ocr service returned %d", resp.StatusCode), common.ErrOCRService)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", common.WrapError(err, "read ocr response")
	}

	var parsed remoteResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", common.NewAppError("OCR_BAD_RESPONSE", "malformed ocr response body", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", common.NewAppError("OCR_PROCESSING_ERROR",
			fmt.Sprintf("ocr service reported failure: %s", string(parsed.ErrorMessage)),
			common.ErrOCRService)
	}

	c.logger.Debug("remote ocr ok",
		"payload_bytes", len(image),
		"duration_ms", time.Since(start).Milliseconds(),
		"results", len(parsed.ParsedResults),
	)

	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}
	return parsed.ParsedResults[0].ParsedText, nil
}

func encodeForm(image []byte, apiKey string, languages []string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("apikey", apiKey); err != nil {
		return nil, "", err
	}
	if len(languages) > 0 {
		if err := w.WriteField("language", strings.Join(languages, "+")); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile("file", "page.png")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
