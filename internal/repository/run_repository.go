package repository

import (
	"context"
	"fmt"

	"macro-outlook/internal/domain"
	"macro-outlook/internal/infra/supabase"
)

// SupabaseRunRepository inserts one row per outlook run
type SupabaseRunRepository struct {
	client *supabase.Client
	table  string
	logger domain.Logger
}

// NewSupabaseRunRepository creates a run repository writing to table
func NewSupabaseRunRepository(client *supabase.Client, table string, logger domain.Logger) *SupabaseRunRepository {
	return &SupabaseRunRepository{
		client: client,
		table:  table,
		logger: logger,
	}
}

// Record inserts the run metadata
func (r *SupabaseRunRepository) Record(ctx context.Context, record *domain.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	row := map[string]interface{}{
		"run_id":       record.RunID,
		"file_count":   record.FileCount,
		"page_count":   record.PageCount,
		"corpus_chars": record.CorpusChars,
		"truncated":    record.Truncated,
		"model":        record.Model,
		"status":       string(record.Status),
		"duration_ms":  record.DurationMS,
		"created_at":   record.CreatedAt,
	}
	if record.ErrorType != "" {
		row["error_type"] = record.ErrorType
	}

	_, _, err := r.client.DB().From(r.table).Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", record.RunID, err)
	}

	r.logger.Debug("Run recorded", "run_id", record.RunID, "table", r.table)
	return nil
}

// NoopRunRecorder drops every record
type NoopRunRecorder struct{}

// Record does nothing
func (NoopRunRecorder) Record(context.Context, *domain.RunRecord) error {
	return nil
}
