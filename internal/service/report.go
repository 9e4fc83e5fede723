package service

import (
	"bytes"
	"fmt"
	"strings"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"

	"github.com/gomutex/godocx"
)

// DocxRenderer builds the downloadable Word document from the completion text
type DocxRenderer struct {
	logger domain.Logger
}

// NewDocxRenderer creates a new renderer
func NewDocxRenderer(logger domain.Logger) *DocxRenderer {
	return &DocxRenderer{logger: logger}
}

// SplitParagraphs splits text at every newline and trims each line.
// Blank lines are kept as empty paragraphs.
func SplitParagraphs(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// Render returns the report for text with its DOCX bytes
func (r *DocxRenderer) Render(text string) (*domain.OutlookReport, error) {
	document := domain.OutlookDocument{
		Title:      domain.ReportTitle,
		Paragraphs: SplitParagraphs(text),
	}

	content, err := writeDocx(document)
	if err != nil {
		r.logger.Error("Failed to serialize outlook document", err, "paragraphs", len(document.Paragraphs))
		return nil, apperrors.NewInternalError("Das Word-Dokument konnte nicht erstellt werden.", err)
	}

	r.logger.Debug("Outlook document rendered", "paragraphs", len(document.Paragraphs), "bytes", len(content))
	return &domain.OutlookReport{
		Text:     text,
		Document: document,
		Content:  content,
		FileName: domain.ReportFileName,
		MimeType: domain.ReportMimeType,
	}, nil
}

func writeDocx(document domain.OutlookDocument) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	if _, err := doc.AddHeading(document.Title, 0); err != nil {
		return nil, fmt.Errorf("adding title: %w", err)
	}
	for _, para := range document.Paragraphs {
		doc.AddParagraph(para)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	return buf.Bytes(), nil
}
