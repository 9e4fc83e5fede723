package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"
)

const (
	DefaultModel           = "gpt-4"
	DefaultTemperature     = float32(0.3)
	DefaultCorpusCharLimit = 15000
	DefaultSecretsFile     = ".streamlit/secrets.toml"
	DefaultRunsTable       = "outlook_runs"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	MaxFileSize    int64
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string

	SecretsFile       string
	OpenAIAPIKey      string
	OpenAIKeySource   CredentialSource
	SecretStoreErr    error
	OpenAIModel       string
	OpenAIBaseURL     string
	Temperature       float32
	CompletionTimeout time.Duration

	CorpusCharLimit    int
	PromptTemplateFile string
	PDFEngine          string
	PDFValidation      string

	SupabaseURL       string
	SupabaseKey       string
	SupabaseRunsTable string
}

// NewConfig creates a new configuration instance from the environment,
// resolving the API key through the secrets file first.
func NewConfig() *AppConfig {
	secretsFile := getEnvOrDefault("SECRETS_FILE", DefaultSecretsFile)
	credential := ResolveAPIKey(NewFileSecretStore(secretsFile), os.Getenv)

	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "json"),
		AllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),

		SecretsFile:       secretsFile,
		OpenAIAPIKey:      credential.Value,
		OpenAIKeySource:   credential.Source,
		SecretStoreErr:    credential.StoreErr,
		OpenAIModel:       getEnvOrDefault("OPENAI_MODEL", DefaultModel),
		OpenAIBaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
		Temperature:       getEnvFloat32OrDefault("OPENAI_TEMPERATURE", DefaultTemperature),
		CompletionTimeout: getEnvDurationOrDefault("COMPLETION_TIMEOUT", 0),

		CorpusCharLimit:    getEnvIntOrDefault("CORPUS_CHAR_LIMIT", DefaultCorpusCharLimit),
		PromptTemplateFile: getEnvOrDefault("PROMPT_TEMPLATE_FILE", ""),
		PDFEngine:          strings.ToLower(getEnvOrDefault("PDF_ENGINE", domain.PDFEngineFitz)),
		PDFValidation:      strings.ToLower(getEnvOrDefault("PDF_VALIDATION", domain.PDFValidationRelaxed)),

		SupabaseURL:       getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:       getEnvOrDefault("SUPABASE_SERVICE_KEY", ""),
		SupabaseRunsTable: getEnvOrDefault("SUPABASE_RUNS_TABLE", DefaultRunsTable),
	}
}

// Validate checks the configuration before any request is served.
// A missing API key is reported as a configuration error wrapping domain.ErrMissingCredential.
func (c *AppConfig) Validate() error {
	if c.OpenAIAPIKey == "" {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("no %s found in %s or the environment", APIKeyName, c.SecretsFile),
			domain.ErrMissingCredential,
		)
	}
	switch c.PDFEngine {
	case domain.PDFEngineFitz, domain.PDFEngineLedongthuc:
	default:
		return apperrors.NewConfigurationError("unknown PDF_ENGINE "+strconv.Quote(c.PDFEngine), nil)
	}
	switch c.PDFValidation {
	case domain.PDFValidationRelaxed, domain.PDFValidationStrict, domain.PDFValidationOff:
	default:
		return apperrors.NewConfigurationError("unknown PDF_VALIDATION "+strconv.Quote(c.PDFValidation), nil)
	}
	if c.CorpusCharLimit <= 0 {
		return apperrors.NewConfigurationError("CORPUS_CHAR_LIMIT must be positive", nil)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return apperrors.NewConfigurationError("OPENAI_TEMPERATURE must be between 0 and 2", nil)
	}
	return nil
}

// RecorderEnabled reports whether run metadata should be written to Supabase
func (c *AppConfig) RecorderEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns json or console
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetAllowedOrigins returns the CORS allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetSecretsFile returns the secrets file path
func (c *AppConfig) GetSecretsFile() string {
	return c.SecretsFile
}

// GetOpenAIAPIKey returns the resolved API key
func (c *AppConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

// GetOpenAIModel returns the completion model
func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

// GetOpenAIBaseURL returns the completion endpoint override
func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

// GetTemperature returns the sampling temperature
func (c *AppConfig) GetTemperature() float32 {
	return c.Temperature
}

// GetCompletionTimeout returns the per-call timeout, zero for none
func (c *AppConfig) GetCompletionTimeout() time.Duration {
	return c.CompletionTimeout
}

// GetCorpusCharLimit returns the corpus truncation limit
func (c *AppConfig) GetCorpusCharLimit() int {
	return c.CorpusCharLimit
}

// GetPromptTemplateFile returns the template override path
func (c *AppConfig) GetPromptTemplateFile() string {
	return c.PromptTemplateFile
}

// GetPDFEngine returns the extraction engine name
func (c *AppConfig) GetPDFEngine() string {
	return c.PDFEngine
}

// GetPDFValidation returns the validation mode
func (c *AppConfig) GetPDFValidation() string {
	return c.PDFValidation
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseRunsTable returns the run audit table name
func (c *AppConfig) GetSupabaseRunsTable() string {
	return c.SupabaseRunsTable
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat32OrDefault(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
