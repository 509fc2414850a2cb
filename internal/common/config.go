package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	OCR     OCRConfig
}

// ServerConfig holds HTTP front-end configuration
type ServerConfig struct {
	HTTPAddr string
}

// ExtractConfig holds text-source-adapter configuration
type ExtractConfig struct {
	MaxFileSizeBytes int64
	PDFRenderDPI     int
	Pdftoppm         string // binary name or absolute path; if empty -> "pdftoppm"
	MaxPages         int    // 0 = no limit
}

// OCRConfig holds OCR-bridge configuration
type OCRConfig struct {
	Mode              string // "disabled" | "local" | "remote"
	Languages         string // comma-separated hints, passed through untouched
	Endpoint          string
	APIKey            string
	Timeout           time.Duration
	MaxPayloadBytes   int64
	RequestsPerSecond float64
	Burst             int
	Preprocess        bool
}

// OCR modes.
const (
	OCRModeDisabled = "disabled"
	OCRModeLocal    = "local"
	OCRModeRemote   = "remote"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Extract: ExtractConfig{
			MaxFileSizeBytes: getEnvAsInt64("MAX_FILE_SIZE_BYTES", 10<<20),
			PDFRenderDPI:     getEnvAsInt("PDF_RENDER_DPI", 300),
			Pdftoppm:         getEnv("PDFTOPPM", ""),
			MaxPages:         getEnvAsInt("MAX_PDF_PAGES", 0),
		},
		OCR: OCRConfig{
			Mode:              getEnv("OCR_MODE", OCRModeDisabled),
			Languages:         getEnv("OCR_LANGUAGES", "eng"),
			Endpoint:          getEnv("OCR_ENDPOINT", ""),
			APIKey:            getEnv("OCR_API_KEY", ""),
			Timeout:           getEnvAsDuration("OCR_TIMEOUT", 20*time.Second),
			MaxPayloadBytes:   getEnvAsInt64("OCR_MAX_PAYLOAD_BYTES", 1<<20),
			RequestsPerSecond: getEnvAsFloat64("OCR_REQUESTS_PER_SECOND", 1),
			Burst:             getEnvAsInt("OCR_BURST", 1),
			Preprocess:        getEnvAsBool("OCR_PREPROCESS", false),
		},
	}
}

// LanguageHints splits the configured language string into individual hints.
func (c OCRConfig) LanguageHints() []string {
	if c.Languages == "" {
		return nil
	}
	parts := strings.Split(c.Languages, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	switch c.OCR.Mode {
	case OCRModeDisabled, OCRModeLocal:
	case OCRModeRemote:
		if c.OCR.Endpoint == "" {
			return NewAppError("CONFIG_ERROR", "OCR_ENDPOINT is required in remote mode", ErrInvalidInput)
		}
		if c.OCR.APIKey == "" {
			return NewAppError("CONFIG_ERROR", "OCR_API_KEY is required in remote mode", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "OCR_MODE must be disabled, local or remote", ErrInvalidInput)
	}
	if c.Extract.MaxFileSizeBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_FILE_SIZE_BYTES must be positive", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
