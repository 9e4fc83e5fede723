package service

import (
	"bytes"
	"fmt"
	"sync"

	"macro-outlook/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disablePDFCPUConfigDir sync.Once

// PDFCPUValidator checks uploads with pdfcpu before any text is extracted
type PDFCPUValidator struct {
	mode   string
	logger domain.Logger
}

// NewPDFValidator creates a validator for the given mode (relaxed, strict or off)
func NewPDFValidator(mode string, logger domain.Logger) *PDFCPUValidator {
	// pdfcpu writes a config dir under the user's home unless told otherwise.
	disablePDFCPUConfigDir.Do(api.DisableConfigDir)
	return &PDFCPUValidator{mode: mode, logger: logger}
}

// Validate returns a *domain.ValidationError naming the file when it is not a readable PDF
func (v *PDFCPUValidator) Validate(document *domain.PDFDocument) error {
	if document == nil || len(document.Data) == 0 {
		name := ""
		if document != nil {
			name = document.Filename
		}
		return &domain.ValidationError{Field: name, Message: "file is empty"}
	}
	if v.mode == domain.PDFValidationOff {
		return nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if v.mode == domain.PDFValidationStrict {
		conf.ValidationMode = model.ValidationStrict
	}

	if err := api.Validate(bytes.NewReader(document.Data), conf); err != nil {
		v.logger.Debug("PDF validation failed", "filename", document.Filename, "mode", v.mode, "error", err)
		return &domain.ValidationError{
			Field:   document.Filename,
			Message: fmt.Sprintf("not a valid PDF: %v", err),
		}
	}
	return nil
}
