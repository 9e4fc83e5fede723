// Package handler provides HTTP handlers for the API and the upload page.
package handler

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"macro-outlook/internal/domain"
)

// OutlookHandler serves the JSON and binary API
type OutlookHandler struct {
	service     domain.OutlookService
	maxFileSize int64
	logger      domain.Logger
}

// NewOutlookHandler creates a new outlook API handler
func NewOutlookHandler(service domain.OutlookService, maxFileSize int64, logger domain.Logger) *OutlookHandler {
	return &OutlookHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// OutlookResponse is the JSON body of a successful run
type OutlookResponse struct {
	RunID     string             `json:"run_id"`
	Outlook   string             `json:"outlook"`
	FileName  string             `json:"file_name"`
	MimeType  string             `json:"mime_type"`
	Document  string             `json:"document"`
	Truncated bool               `json:"truncated"`
	Files     []domain.FileStats `json:"files"`
}

// Generate handles POST /api/v1/outlook
func (h *OutlookHandler) Generate(w http.ResponseWriter, r *http.Request) {
	result, ok := h.generate(w, r)
	if !ok {
		return
	}

	report := result.Report
	response := OutlookResponse{
		RunID:     result.RunID,
		Outlook:   report.Text,
		FileName:  report.FileName,
		MimeType:  report.MimeType,
		Document:  base64.StdEncoding.EncodeToString(report.Content),
		Truncated: result.Truncated,
		Files:     []domain.FileStats{},
	}
	if result.Corpus != nil {
		response.Files = result.Corpus.Files
	}
	writeJSON(w, http.StatusOK, response)
}

// GenerateDocument handles POST /api/v1/outlook/document
func (h *OutlookHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	result, ok := h.generate(w, r)
	if !ok {
		return
	}

	report := result.Report
	w.Header().Set("Content-Type", report.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Content); err != nil {
		h.logger.Warn("Failed to write document response", "run_id", result.RunID, "error", err)
	}
}

// generate runs the pipeline and writes every non-success response itself.
// ok is true only when a report was produced.
func (h *OutlookHandler) generate(w http.ResponseWriter, r *http.Request) (*domain.OutlookResult, bool) {
	runID := RequestIDFromContext(r.Context())

	documents, err := readUploads(w, r, h.maxFileSize)
	if err != nil {
		h.logger.Warn("Rejected upload", "run_id", runID, "error", err)
		writeAppError(w, err)
		return nil, false
	}

	result, err := h.service.Generate(r.Context(), runID, documents)
	if err != nil {
		writeAppError(w, err)
		return nil, false
	}
	if result.Idle {
		w.WriteHeader(http.StatusNoContent)
		return nil, false
	}
	return result, true
}
