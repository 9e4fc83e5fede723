package service

import (
	"context"
	"time"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"
)

const recordTimeout = 10 * time.Second

// OutlookPipeline runs extraction, prompt composition, completion and
// rendering for one request. It holds no per-run state.
type OutlookPipeline struct {
	extractor  domain.TextExtractor
	composer   domain.PromptComposer
	completion domain.CompletionClient
	renderer   domain.ReportRenderer
	recorder   domain.RunRecorder
	logger     domain.Logger
	now        func() time.Time
}

// NewOutlookPipeline creates a new pipeline. A nil recorder records nothing.
func NewOutlookPipeline(
	extractor domain.TextExtractor,
	composer domain.PromptComposer,
	completion domain.CompletionClient,
	renderer domain.ReportRenderer,
	recorder domain.RunRecorder,
	logger domain.Logger,
) *OutlookPipeline {
	return &OutlookPipeline{
		extractor:  extractor,
		composer:   composer,
		completion: completion,
		renderer:   renderer,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate produces the outlook for documents. With no documents the result
// is idle and nothing else happens.
func (p *OutlookPipeline) Generate(ctx context.Context, runID string, documents []*domain.PDFDocument) (*domain.OutlookResult, error) {
	result := &domain.OutlookResult{RunID: runID}
	if len(documents) == 0 {
		result.Idle = true
		return result, nil
	}

	started := p.now()
	record := &domain.RunRecord{
		RunID:     runID,
		FileCount: len(documents),
		Model:     p.completion.Model(),
		CreatedAt: started.UTC(),
	}

	err := p.run(ctx, documents, result, record)
	record.DurationMS = p.now().Sub(started).Milliseconds()
	if err != nil {
		record.Status = domain.RunStatusFailed
		record.ErrorType = string(apperrors.GetType(err))
		p.logger.Warn("Outlook run failed", "run_id", runID, "error_type", record.ErrorType, "error", err)
	} else {
		record.Status = domain.RunStatusSucceeded
		p.logger.Info("Outlook run finished",
			"run_id", runID,
			"files", record.FileCount,
			"pages", record.PageCount,
			"corpus_chars", record.CorpusChars,
			"truncated", record.Truncated,
			"duration_ms", record.DurationMS,
		)
	}
	p.record(ctx, record)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *OutlookPipeline) run(ctx context.Context, documents []*domain.PDFDocument, result *domain.OutlookResult, record *domain.RunRecord) error {
	corpus, err := p.extractor.Extract(ctx, documents)
	if corpus != nil {
		record.PageCount = corpus.PageCount()
	}
	if err != nil {
		return err
	}
	result.Corpus = corpus

	prompt, err := p.composer.Compose(corpus.Text)
	if err != nil {
		return apperrors.NewInternalError("failed to compose prompt", err)
	}
	result.Truncated = prompt.Truncated
	result.CorpusChars = prompt.CorpusChars
	record.CorpusChars = prompt.CorpusChars
	record.Truncated = prompt.Truncated
	if prompt.Truncated {
		p.logger.Debug("Corpus truncated for prompt", "run_id", result.RunID, "kept_chars", prompt.CorpusChars)
	}

	text, err := p.completion.Complete(ctx, prompt.Text)
	if err != nil {
		return err
	}

	report, err := p.renderer.Render(text)
	if err != nil {
		return err
	}
	result.Report = report
	return nil
}

func (p *OutlookPipeline) record(ctx context.Context, record *domain.RunRecord) {
	if p.recorder == nil {
		return
	}
	// A canceled request still gets its audit row.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := p.recorder.Record(recordCtx, record); err != nil {
		p.logger.Warn("Failed to record outlook run", "run_id", record.RunID, "error", err)
	}
}
