package domain

import (
	"context"
	"time"
)

// PDFValidator checks that an uploaded file is structurally a PDF
type PDFValidator interface {
	Validate(document *PDFDocument) error
}

// PageTextEngine defines the strategy interface for per-page text extraction
type PageTextEngine interface {
	Name() string
	// PageTexts returns the text of every page in document order.
	PageTexts(pdfBytes []byte) ([]string, error)
}

// TextExtractor builds the corpus for one run from the uploaded files
type TextExtractor interface {
	Extract(ctx context.Context, documents []*PDFDocument) (*ExtractedCorpus, error)
}

// PromptComposer interpolates the corpus into the analytical template
type PromptComposer interface {
	Compose(corpus string) (*Prompt, error)
}

// CompletionClient sends one prompt to the completion service
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ReportRenderer turns completion text into the downloadable document
type ReportRenderer interface {
	Render(text string) (*OutlookReport, error)
}

// RunRecorder persists run metadata
type RunRecorder interface {
	Record(ctx context.Context, record *RunRecord) error
}

// OutlookService runs the whole outlook pipeline for one request
type OutlookService interface {
	Generate(ctx context.Context, runID string, documents []*PDFDocument) (*OutlookResult, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetAllowedOrigins() []string

	GetSecretsFile() string
	GetOpenAIAPIKey() string
	GetOpenAIModel() string
	GetOpenAIBaseURL() string
	GetTemperature() float32
	GetCompletionTimeout() time.Duration

	GetCorpusCharLimit() int
	GetPromptTemplateFile() string
	GetPDFEngine() string
	GetPDFValidation() string

	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseRunsTable() string
}
