package domain

import "errors"

// Domain errors
var (
	ErrMissingCredential = errors.New("missing OPENAI_API_KEY")
	ErrInvalidFile       = errors.New("invalid file")
	ErrEmptyCorpus       = errors.New("no text could be extracted from the uploaded PDFs")
	ErrCompletionFailed  = errors.New("completion service request failed")
	ErrEmptyCompletion   = errors.New("completion service returned no choices")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
