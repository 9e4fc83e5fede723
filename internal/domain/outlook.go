package domain

import "time"

const (
	// ReportFileName is the name offered for the downloadable document.
	ReportFileName = "Volkswirtschaftlicher_Ausblick.docx"
	// ReportMimeType is the wordprocessingml MIME type.
	ReportMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// ReportTitle is the heading placed at the top of every document.
	ReportTitle = "Volkswirtschaftlicher Ausblick – Mittelfristplanung"
)

// Prompt is the composed completion prompt
type Prompt struct {
	Text string
	// CorpusChars is the number of corpus characters embedded in Text.
	CorpusChars int
	Truncated   bool
}

// OutlookDocument is the paragraph structure of the rendered report
type OutlookDocument struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// OutlookReport is the completion text plus its serialized document
type OutlookReport struct {
	Text     string          `json:"outlook"`
	Document OutlookDocument `json:"-"`
	Content  []byte          `json:"-"`
	FileName string          `json:"file_name"`
	MimeType string          `json:"mime_type"`
}

// OutlookResult is what one pipeline run produces.
// Idle is set when no files were uploaded; Report is nil in that case.
type OutlookResult struct {
	RunID     string           `json:"run_id"`
	Idle      bool             `json:"idle"`
	Corpus    *ExtractedCorpus `json:"corpus,omitempty"`
	Truncated bool             `json:"truncated"`
	// CorpusChars is how much of the corpus went into the prompt.
	CorpusChars int            `json:"corpus_chars"`
	Report      *OutlookReport `json:"report,omitempty"`
}

// RunStatus is the outcome stored in a RunRecord
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord is the audit metadata of one run. It never carries corpus or report text.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	FileCount   int       `json:"file_count"`
	PageCount   int       `json:"page_count"`
	CorpusChars int       `json:"corpus_chars"`
	Truncated   bool      `json:"truncated"`
	Model       string    `json:"model"`
	Status      RunStatus `json:"status"`
	ErrorType   string    `json:"error_type,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}
