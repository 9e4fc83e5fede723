package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "MAX_FILE_SIZE", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "OPENAI_TEMPERATURE", "COMPLETION_TIMEOUT",
		"CORPUS_CHAR_LIMIT", "PROMPT_TEMPLATE_FILE", "PDF_ENGINE", "PDF_VALIDATION",
		"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "SUPABASE_RUNS_TABLE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "missing.toml"))
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetOpenAIModel() != "gpt-4" {
		t.Fatalf("expected default model gpt-4, got %s", cfg.GetOpenAIModel())
	}
	if cfg.GetTemperature() != 0.3 {
		t.Fatalf("expected default temperature 0.3, got %v", cfg.GetTemperature())
	}
	if cfg.GetCorpusCharLimit() != 15000 {
		t.Fatalf("expected default corpus limit 15000, got %d", cfg.GetCorpusCharLimit())
	}
	if cfg.GetCompletionTimeout() != 0 {
		t.Fatalf("expected no completion timeout by default, got %s", cfg.GetCompletionTimeout())
	}
	if cfg.GetPDFEngine() != domain.PDFEngineFitz {
		t.Fatalf("expected fitz engine by default, got %s", cfg.GetPDFEngine())
	}
	if cfg.GetPDFValidation() != domain.PDFValidationRelaxed {
		t.Fatalf("expected relaxed validation by default, got %s", cfg.GetPDFValidation())
	}
	if cfg.GetSupabaseRunsTable() != "outlook_runs" {
		t.Fatalf("expected default runs table, got %s", cfg.GetSupabaseRunsTable())
	}
	if cfg.RecorderEnabled() {
		t.Fatalf("expected recorder to be disabled without supabase settings")
	}
	if cfg.GetOpenAIAPIKey() != "" {
		t.Fatalf("expected no api key, got %s", cfg.GetOpenAIAPIKey())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("COMPLETION_TIMEOUT", "90s")
	t.Setenv("CORPUS_CHAR_LIMIT", "500")
	t.Setenv("PDF_ENGINE", "LEDONGTHUC")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if origins := cfg.GetAllowedOrigins(); len(origins) != 2 || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", origins)
	}
	if cfg.GetOpenAIAPIKey() != "sk-env" || cfg.OpenAIKeySource != SourceEnvironment {
		t.Fatalf("expected env api key, got %q from %q", cfg.GetOpenAIAPIKey(), cfg.OpenAIKeySource)
	}
	if cfg.GetOpenAIModel() != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %s", cfg.GetOpenAIModel())
	}
	if cfg.GetTemperature() != float32(0.7) {
		t.Fatalf("expected temperature 0.7, got %v", cfg.GetTemperature())
	}
	if cfg.GetCompletionTimeout() != 90*time.Second {
		t.Fatalf("expected 90s timeout, got %s", cfg.GetCompletionTimeout())
	}
	if cfg.GetCorpusCharLimit() != 500 {
		t.Fatalf("expected corpus limit 500, got %d", cfg.GetCorpusCharLimit())
	}
	if cfg.GetPDFEngine() != domain.PDFEngineLedongthuc {
		t.Fatalf("expected engine to be lower-cased, got %s", cfg.GetPDFEngine())
	}
	if !cfg.RecorderEnabled() {
		t.Fatalf("expected recorder to be enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("OPENAI_TEMPERATURE", "warm")
	t.Setenv("COMPLETION_TIMEOUT", "soon")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetTemperature() != DefaultTemperature {
		t.Fatalf("expected default temperature, got %v", cfg.GetTemperature())
	}
	if cfg.GetCompletionTimeout() != 0 {
		t.Fatalf("expected no timeout, got %s", cfg.GetCompletionTimeout())
	}
}

func TestValidate_MissingCredential(t *testing.T) {
	clearEnv(t)

	err := NewConfig().Validate()
	if err == nil {
		t.Fatalf("expected missing credential error")
	}
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidate_RejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *AppConfig)
	}{
		{"unknown engine", func(c *AppConfig) { c.PDFEngine = "pdfplumber" }},
		{"unknown validation", func(c *AppConfig) { c.PDFValidation = "paranoid" }},
		{"zero corpus limit", func(c *AppConfig) { c.CorpusCharLimit = 0 }},
		{"temperature too high", func(c *AppConfig) { c.Temperature = 2.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("OPENAI_API_KEY", "sk-test")
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestNewConfig_DefaultSecretsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_FILE", "")

	cfg := NewConfig()

	if cfg.GetSecretsFile() != ".streamlit/secrets.toml" {
		t.Fatalf("expected default secrets file .streamlit/secrets.toml, got %s", cfg.GetSecretsFile())
	}
}
