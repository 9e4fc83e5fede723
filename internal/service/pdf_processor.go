package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"macro-outlook/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

const pageTimeout = 90 * time.Second

// NewPageTextEngine returns the engine registered under name
func NewPageTextEngine(name string, logger domain.Logger) (domain.PageTextEngine, error) {
	switch name {
	case "", domain.PDFEngineFitz:
		return NewFitzEngine(logger), nil
	case domain.PDFEngineLedongthuc:
		return NewLedongthucEngine(logger), nil
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", name)
	}
}

// FitzEngine extracts page text with MuPDF through go-fitz
type FitzEngine struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewFitzEngine creates a go-fitz backed engine
func NewFitzEngine(logger domain.Logger) *FitzEngine {
	return &FitzEngine{logger: logger, pageTimeout: pageTimeout}
}

// Name returns the engine name
func (e *FitzEngine) Name() string { return domain.PDFEngineFitz }

// PageTexts returns one entry per page. Pages that fail or time out are "".
func (e *FitzEngine) PageTexts(pdfBytes []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := doc.NumPage()
	pages := make([]string, numPages)

	type pageResult struct {
		text string
		err  error
	}

	for pageNum := 0; pageNum < numPages; pageNum++ {
		e.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)
		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, err := doc.Text(idx)
			resultCh <- pageResult{text: t, err: err}
		}(pageNum)

		select {
		case res := <-resultCh:
			if res.err != nil {
				e.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", res.err)
				continue
			}
			// MuPDF ends every line and block with its own newlines.
			pages[pageNum] = sanitizePageText(strings.TrimRight(res.text, "\n"))
		case <-time.After(e.pageTimeout):
			// The document is not safe for concurrent use, so the remaining
			// pages stay empty and the stuck call owns the Close.
			e.logger.Warn("PDF page extraction timeout; skipping remaining pages",
				"page", pageNum+1, "total", numPages, "timeout_sec", int(e.pageTimeout.Seconds()))
			go func() {
				<-resultCh
				doc.Close()
			}()
			return pages, nil
		}
	}

	doc.Close()
	return pages, nil
}

// LedongthucEngine extracts page text with the pure-Go ledongthuc/pdf reader
type LedongthucEngine struct {
	logger domain.Logger
}

// NewLedongthucEngine creates a ledongthuc/pdf backed engine
func NewLedongthucEngine(logger domain.Logger) *LedongthucEngine {
	return &LedongthucEngine{logger: logger}
}

// Name returns the engine name
func (e *LedongthucEngine) Name() string { return domain.PDFEngineLedongthuc }

// PageTexts returns one entry per page. Pages that fail are "".
func (e *LedongthucEngine) PageTexts(pdfBytes []byte) (pages []string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page_num", i, "total", numPages, "error", err)
			continue
		}
		pages[i-1] = sanitizePageText(text)
	}
	return pages, nil
}

// sanitizePageText drops NUL bytes and invalid UTF-8, which neither the
// completion API nor the DOCX writer accept. Everything else is kept as-is.
func sanitizePageText(text string) string {
	text = strings.ToValidUTF8(text, "")
	return strings.ReplaceAll(text, "\x00", "")
}
