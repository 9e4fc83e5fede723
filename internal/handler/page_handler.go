package handler

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const (
	statusSuccess = "success"
	statusError   = "error"

	msgFilesRead = "✅ PDF-Dateien erfolgreich gelesen."
	msgInternal  = "Es ist ein unerwarteter Fehler aufgetreten."
)

type pageStatus struct {
	Kind string
	Text string
}

type pageData struct {
	MaxUploadMB int64
	Statuses    []pageStatus
	Report      bool
	Truncated   bool
	CorpusChars int
	PreviewHTML template.HTML
	DownloadURL template.URL
	FileName    string
}

// PageHandler serves the browser upload flow
type PageHandler struct {
	service     domain.OutlookService
	maxFileSize int64
	markdown    goldmark.Markdown
	logger      domain.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(service domain.OutlookService, maxFileSize int64, logger domain.Logger) *PageHandler {
	return &PageHandler{
		service:     service,
		maxFileSize: maxFileSize,
		markdown:    goldmark.New(),
		logger:      logger,
	}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPageData())
}

// Generate handles POST /outlook
func (h *PageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	runID := RequestIDFromContext(r.Context())
	data := h.newPageData()

	documents, err := readUploads(w, r, h.maxFileSize)
	if err != nil {
		h.logger.Warn("Rejected upload", "run_id", runID, "error", err)
		h.renderError(w, data, err)
		return
	}

	result, err := h.service.Generate(r.Context(), runID, documents)
	if err != nil {
		// completion failures happen after the PDFs were read
		if apperrors.IsType(err, apperrors.ErrorTypeUnavailable) {
			data.Statuses = append(data.Statuses, pageStatus{Kind: statusSuccess, Text: msgFilesRead})
		}
		h.renderError(w, data, err)
		return
	}
	if result.Idle {
		h.render(w, http.StatusOK, data)
		return
	}

	preview, err := h.renderMarkdown(result.Report.Text)
	if err != nil {
		h.logger.Error("Failed to render markdown preview", err, "run_id", runID)
		preview = template.HTML("<pre>" + template.HTMLEscapeString(result.Report.Text) + "</pre>")
	}

	data.Statuses = append(data.Statuses, pageStatus{Kind: statusSuccess, Text: msgFilesRead})
	data.Report = true
	data.Truncated = result.Truncated
	data.CorpusChars = result.CorpusChars
	data.PreviewHTML = preview
	data.FileName = result.Report.FileName
	data.DownloadURL = dataURI(result.Report.MimeType, result.Report.Content)
	h.render(w, http.StatusOK, data)
}

func (h *PageHandler) newPageData() pageData {
	return pageData{MaxUploadMB: h.maxFileSize >> 20}
}

func (h *PageHandler) renderError(w http.ResponseWriter, data pageData, err error) {
	message := msgInternal
	if appErr, ok := apperrors.As(err); ok {
		message = appErr.Message
	}
	data.Statuses = append(data.Statuses, pageStatus{Kind: statusError, Text: "❌ " + message})
	h.render(w, apperrors.GetStatusCode(err), data)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to render page", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderMarkdown converts the completion text to HTML. Raw HTML in the
// text is not passed through.
func (h *PageHandler) renderMarkdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func dataURI(mimeType string, content []byte) template.URL {
	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content))
}
