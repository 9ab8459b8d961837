package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Optional bearer token for the local API. Empty disables auth.
	APIKey string

	// OCR collaborator (OpenAI-compatible vision endpoint).
	OCRBaseURL    string
	OCRAPIKey     string
	OCRModel      string
	OCRTimeout    time.Duration
	OCRMaxRetries uint

	// Upload limits
	MaxUploadBytes int64
	MaxQueueSize   int

	// Job state
	JobTTL time.Duration

	// PDF handling
	RenderDPI            int
	MinPDFTextChars      int
	PDFFallbackPdftotext bool

	// Session defaults
	DefaultSchema string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		APIKey: os.Getenv("PAPERFORGE_API_KEY"),

		OCRBaseURL:    envOr("OCR_BASE_URL", "https://api.groq.com/openai/v1"),
		OCRAPIKey:     os.Getenv("OCR_API_KEY"),
		OCRModel:      envOr("OCR_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
		OCRTimeout:    envDuration("OCR_TIMEOUT", 120*time.Second),
		OCRMaxRetries: uint(envInt("OCR_MAX_RETRIES", 3)),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		MaxQueueSize:   envInt("MAX_QUEUE_SIZE", 100),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		RenderDPI:            envInt("RENDER_DPI", 144), // twice the 72dpi base, matches the shell's 2.0 preview scale
		MinPDFTextChars:      envInt("MIN_PDF_TEXT_CHARS", 64),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		DefaultSchema: envOr("DEFAULT_SCHEMA", "english-lang-9"),
	}

	if cfg.OCRMaxRetries == 0 {
		cfg.OCRMaxRetries = 3
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.RenderDPI <= 0 {
		cfg.RenderDPI = 144
	}
	if cfg.MinPDFTextChars <= 0 {
		cfg.MinPDFTextChars = 64
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OCRAPIKey == "" {
		return fmt.Errorf("OCR_API_KEY is required")
	}
	if c.OCRBaseURL == "" {
		return fmt.Errorf("OCR_BASE_URL must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
