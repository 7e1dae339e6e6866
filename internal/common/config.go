package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all engine configuration
type Config struct {
	Ingest     IngestConfig
	OCR        OCRConfig
	Extraction ExtractionConfig
	Batch      BatchConfig
}

// IngestConfig holds document intake configuration
type IngestConfig struct {
	Pdfinfo   string // binary name or absolute path; if empty -> "pdfinfo"
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdfimages string // binary name or absolute path; if empty -> "pdfimages"

	// ScannedCoverageMax classifies a page as SCANNED when native text
	// covers less than this fraction of the page area.
	ScannedCoverageMax float64
}

// OCRConfig holds recognition-engine configuration
type OCRConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang        string // default "eng"
	DPI         int    // rasterization DPI for scanned pages, default 300
	TessdataDir string
	PSM         int // e.g., 6 is good for uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default

	MaxRetries  int           // transient-failure retries per page, default 2
	Backoff     time.Duration // initial backoff, doubled per retry
	Concurrency int           // inner OCR pool size, default 2
}

// ExtractionConfig holds rule-tier priors and review policy. Priors are
// policy, not mechanism: the tier ordering table >= pattern >= proximity
// must survive any tuning.
type ExtractionConfig struct {
	PriorTable      float32
	PriorPattern    float32
	PriorProximity  float32
	ConfidenceFloor float32 // records below this are flagged NeedsReview
	ProximityWindow int     // default token window for proximity rules
}

// BatchConfig holds document-level scheduling configuration
type BatchConfig struct {
	Workers int // outer document pool size
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			Pdfinfo:            getEnv("SDS_PDFINFO", "pdfinfo"),
			Pdftotext:          getEnv("SDS_PDFTOTEXT", "pdftotext"),
			Pdfimages:          getEnv("SDS_PDFIMAGES", "pdfimages"),
			ScannedCoverageMax: getEnvAsFloat64("SDS_SCANNED_COVERAGE_MAX", 0.05),
		},
		OCR: OCRConfig{
			Pdftoppm:    getEnv("SDS_PDFTOPPM", "pdftoppm"),
			Tesseract:   getEnv("SDS_TESSERACT", "tesseract"),
			Lang:        getEnv("SDS_TESSERACT_LANG", "eng"),
			DPI:         getEnvAsInt("SDS_OCR_DPI", 300),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("SDS_OCR_PSM", 0),
			OEM:         getEnvAsInt("SDS_OCR_OEM", 0),
			MaxRetries:  getEnvAsInt("SDS_OCR_RETRIES", 2),
			Backoff:     getEnvAsDuration("SDS_OCR_BACKOFF", 500*time.Millisecond),
			Concurrency: getEnvAsInt("SDS_OCR_CONCURRENCY", 2),
		},
		Extraction: ExtractionConfig{
			PriorTable:      getEnvAsFloat32("SDS_PRIOR_TABLE", 0.95),
			PriorPattern:    getEnvAsFloat32("SDS_PRIOR_PATTERN", 0.85),
			PriorProximity:  getEnvAsFloat32("SDS_PRIOR_PROXIMITY", 0.70),
			ConfidenceFloor: getEnvAsFloat32("SDS_CONFIDENCE_FLOOR", 0.7),
			ProximityWindow: getEnvAsInt("SDS_PROXIMITY_WINDOW", 8),
		},
		Batch: BatchConfig{
			Workers: getEnvAsInt("SDS_WORKERS", 4),
		},
	}
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Ingest.ScannedCoverageMax <= 0 || c.Ingest.ScannedCoverageMax >= 1 {
		return NewAppError("CONFIG_ERROR", "SDS_SCANNED_COVERAGE_MAX must be in (0,1)", ErrInvalidInput)
	}
	if c.OCR.MaxRetries < 0 {
		return NewAppError("CONFIG_ERROR", "SDS_OCR_RETRIES must be >= 0", ErrInvalidInput)
	}
	if c.OCR.Concurrency < 1 {
		return NewAppError("CONFIG_ERROR", "SDS_OCR_CONCURRENCY must be >= 1", ErrInvalidInput)
	}
	if c.Batch.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "SDS_WORKERS must be >= 1", ErrInvalidInput)
	}
	if c.Extraction.ConfidenceFloor < 0 || c.Extraction.ConfidenceFloor > 1 {
		return NewAppError("CONFIG_ERROR", "SDS_CONFIDENCE_FLOOR must be in [0,1]", ErrInvalidInput)
	}
	if c.Extraction.PriorTable < c.Extraction.PriorPattern || c.Extraction.PriorPattern < c.Extraction.PriorProximity {
		return NewAppError("CONFIG_ERROR", "rule priors must keep table >= pattern >= proximity", ErrInvalidInput)
	}
	return nil
}
