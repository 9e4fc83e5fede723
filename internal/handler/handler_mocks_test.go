package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"macro-outlook/internal/domain"
)

type mockOutlookService struct {
	result    *domain.OutlookResult
	err       error
	calls     int
	lastRunID string
	lastDocs  []*domain.PDFDocument
}

func (m *mockOutlookService) Generate(ctx context.Context, runID string, documents []*domain.PDFDocument) (*domain.OutlookResult, error) {
	m.calls++
	m.lastRunID = runID
	m.lastDocs = documents
	if m.err != nil {
		return nil, m.err
	}
	if len(documents) == 0 {
		return &domain.OutlookResult{RunID: runID, Idle: true}, nil
	}
	if m.result != nil {
		m.result.RunID = runID
	}
	return m.result, nil
}

func successResult() *domain.OutlookResult {
	return &domain.OutlookResult{
		Corpus: &domain.ExtractedCorpus{
			Text:  "GDP growth is 2%.\n",
			Files: []domain.FileStats{{Filename: "a.pdf", PageCount: 1, Chars: 17}},
		},
		CorpusChars: 18,
		Report: &domain.OutlookReport{
			Text:     "## Umfeld\nBIP **wächst**\n<script>alert(1)</script>",
			Document: domain.OutlookDocument{Title: domain.ReportTitle, Paragraphs: []string{"## Umfeld", "BIP **wächst**"}},
			Content:  []byte("PK-docx-bytes"),
			FileName: domain.ReportFileName,
			MimeType: domain.ReportMimeType,
		},
	}
}

type uploadFile struct {
	field string
	name  string
	data  []byte
}

func newUploadRequest(t *testing.T, target string, files ...uploadFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := mw.WriteField("submit", "1"); err != nil {
		t.Fatalf("writing field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestRouter(service domain.OutlookService, maxSize int64) http.Handler {
	logger := NewMockHandlerLogger()
	return NewRouter(
		NewOutlookHandler(service, maxSize, logger),
		NewPageHandler(service, maxSize, logger),
		[]string{"http://localhost:5173"},
	)
}
