package config

import (
	"macro-outlook/internal/domain"
	"macro-outlook/internal/infra/supabase"
	"macro-outlook/internal/repository"
	"macro-outlook/internal/service"
	apperrors "macro-outlook/pkg/errors"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	Extractor      domain.TextExtractor
	Completion     domain.CompletionClient
	RunRecorder    domain.RunRecorder
	OutlookService domain.OutlookService
}

// NewContainer wires the outlook pipeline from a validated configuration
func NewContainer(cfg *AppConfig, logger domain.Logger) (*Container, error) {
	engine, err := service.NewPageTextEngine(cfg.GetPDFEngine(), logger)
	if err != nil {
		return nil, apperrors.NewConfigurationError(err.Error(), err)
	}
	validator := service.NewPDFValidator(cfg.GetPDFValidation(), logger)
	extractor := service.NewCorpusExtractor(validator, engine, logger)

	templateText, err := service.LoadPromptTemplate(cfg.GetPromptTemplateFile())
	if err != nil {
		return nil, apperrors.NewConfigurationError("prompt template could not be read", err)
	}
	composer, err := service.NewPromptComposer(templateText, cfg.GetCorpusCharLimit())
	if err != nil {
		return nil, apperrors.NewConfigurationError("prompt template is invalid", err)
	}

	completion := service.NewCompletionClient(service.CompletionOptions{
		APIKey:      cfg.GetOpenAIAPIKey(),
		Model:       cfg.GetOpenAIModel(),
		BaseURL:     cfg.GetOpenAIBaseURL(),
		Temperature: cfg.GetTemperature(),
		Timeout:     cfg.GetCompletionTimeout(),
	}, logger)

	recorder, err := newRunRecorder(cfg, logger)
	if err != nil {
		return nil, err
	}

	pipeline := service.NewOutlookPipeline(
		extractor,
		composer,
		completion,
		service.NewDocxRenderer(logger),
		recorder,
		logger,
	)

	logger.Info("Outlook pipeline ready",
		"engine", engine.Name(),
		"validation", cfg.GetPDFValidation(),
		"model", completion.Model(),
		"key_source", string(cfg.OpenAIKeySource),
		"run_audit", cfg.RecorderEnabled(),
	)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Extractor:      extractor,
		Completion:     completion,
		RunRecorder:    recorder,
		OutlookService: pipeline,
	}, nil
}

func newRunRecorder(cfg *AppConfig, logger domain.Logger) (domain.RunRecorder, error) {
	if !cfg.RecorderEnabled() {
		return repository.NoopRunRecorder{}, nil
	}
	client, err := supabase.NewClient(cfg, logger)
	if err != nil {
		return nil, apperrors.NewConfigurationError("failed to initialize run audit", err)
	}
	return repository.NewSupabaseRunRepository(client, cfg.GetSupabaseRunsTable(), logger), nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetOutlookService returns the pipeline
func (c *Container) GetOutlookService() domain.OutlookService {
	return c.OutlookService
}
