package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"macro-outlook/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) add(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.add("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.add("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.add("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.add("WARN: " + msg)
}

func (m *MockLogger) Contains(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// fakeEngine returns canned pages keyed by the document bytes
type fakeEngine struct {
	pages map[string][]string
	fail  map[string]error
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) PageTexts(pdfBytes []byte) ([]string, error) {
	key := string(pdfBytes)
	if err, ok := e.fail[key]; ok {
		return nil, err
	}
	return e.pages[key], nil
}

// fakeValidator rejects the listed filenames
type fakeValidator struct {
	reject map[string]bool
}

func (v *fakeValidator) Validate(doc *domain.PDFDocument) error {
	if v.reject[doc.Filename] {
		return &domain.ValidationError{Field: doc.Filename, Message: "not a valid PDF"}
	}
	return nil
}

type fakeExtractor struct {
	corpus *domain.ExtractedCorpus
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, docs []*domain.PDFDocument) (*domain.ExtractedCorpus, error) {
	f.calls++
	return f.corpus, f.err
}

type fakeCompletion struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeCompletion) Model() string { return "gpt-4" }

type fakeRecorder struct {
	records []*domain.RunRecord
	err     error
	ctxErr  error
}

func (f *fakeRecorder) Record(ctx context.Context, record *domain.RunRecord) error {
	f.ctxErr = ctx.Err()
	f.records = append(f.records, record)
	return f.err
}

var errBroken = errors.New("broken xref table")

func docs(names ...string) []*domain.PDFDocument {
	out := make([]*domain.PDFDocument, 0, len(names))
	for _, name := range names {
		out = append(out, &domain.PDFDocument{Filename: name, Data: []byte(name)})
	}
	return out
}
