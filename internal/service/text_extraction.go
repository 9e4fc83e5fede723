package service

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// CorpusExtractor validates every upload, extracts its pages and joins them
// into one corpus in upload order.
type CorpusExtractor struct {
	validator domain.PDFValidator
	engine    domain.PageTextEngine
	logger    domain.Logger
	workers   int
}

// NewCorpusExtractor creates an extractor. A nil validator skips validation.
func NewCorpusExtractor(validator domain.PDFValidator, engine domain.PageTextEngine, logger domain.Logger) *CorpusExtractor {
	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}
	return &CorpusExtractor{
		validator: validator,
		engine:    engine,
		logger:    logger,
		workers:   workers,
	}
}

// Extract parses all documents and returns the page texts, each followed by a
// newline. The first file (in upload order) that cannot be read aborts the batch.
func (x *CorpusExtractor) Extract(ctx context.Context, documents []*domain.PDFDocument) (*domain.ExtractedCorpus, error) {
	pagesByFile := make([][]string, len(documents))
	errs := make([]error, len(documents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.workers)
	for i, doc := range documents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// File errors are kept by index so the earliest failing upload is
			// reported no matter which goroutine finishes first.
			pagesByFile[i], errs[i] = x.extractFile(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err == nil {
			continue
		}
		x.logger.Warn("PDF extraction failed", "filename", documents[i].Filename, "error", err)
		return nil, apperrors.NewExtractionError(
			"Konnte die PDF-Datei nicht lesen: "+documents[i].Filename,
			err.Error(),
			errors.Join(domain.ErrInvalidFile, err),
		)
	}

	corpus := &domain.ExtractedCorpus{Files: make([]domain.FileStats, 0, len(documents))}
	var sb strings.Builder
	for i, pages := range pagesByFile {
		stats := domain.FileStats{Filename: documents[i].Filename, PageCount: len(pages)}
		for _, page := range pages {
			sb.WriteString(page)
			sb.WriteString("\n")
			stats.Chars += len([]rune(page))
		}
		corpus.Files = append(corpus.Files, stats)
	}
	corpus.Text = sb.String()

	if strings.TrimSpace(corpus.Text) == "" {
		return corpus, apperrors.NewExtractionError(
			"Konnte keinen Text aus den PDFs extrahieren.",
			"",
			domain.ErrEmptyCorpus,
		)
	}

	x.logger.Info("PDF text extracted",
		"files", len(documents),
		"pages", corpus.PageCount(),
		"engine", x.engine.Name(),
	)
	return corpus, nil
}

func (x *CorpusExtractor) extractFile(doc *domain.PDFDocument) ([]string, error) {
	if x.validator != nil {
		if err := x.validator.Validate(doc); err != nil {
			return nil, err
		}
	}
	return x.engine.PageTexts(doc.Data)
}
