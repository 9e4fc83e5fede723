package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"macro-outlook/internal/domain"
	apperrors "macro-outlook/pkg/errors"
)

const maxMultipartMemory = 32 << 20

// uploadFields are the multipart fields files are read from, in order
var uploadFields = []string{"files", "file"}

// readUploads returns the uploaded PDFs in submission order. A form without
// files yields an empty slice and no error.
func readUploads(w http.ResponseWriter, r *http.Request, maxSize int64) ([]*domain.PDFDocument, error) {
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewValidationError(
				"Die hochgeladenen Dateien sind zu groß.",
				fmt.Sprintf("limit %d bytes", tooLarge.Limit),
			)
		}
		return nil, apperrors.NewValidationError("Ungültiges Upload-Formular.", err.Error())
	}
	defer r.MultipartForm.RemoveAll()

	var documents []*domain.PDFDocument
	for _, field := range uploadFields {
		for _, header := range r.MultipartForm.File[field] {
			name := sanitizeFilename(header.Filename)
			if name == "" {
				// an empty file input still submits a nameless part
				continue
			}
			if strings.ToLower(filepath.Ext(name)) != ".pdf" {
				return nil, apperrors.NewValidationError("Nur PDF-Dateien werden unterstützt.", name)
			}
			data, err := readPart(header)
			if err != nil {
				return nil, apperrors.NewValidationError("Datei konnte nicht gelesen werden.", name)
			}
			documents = append(documents, &domain.PDFDocument{Filename: name, Data: data})
		}
	}
	return documents, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// sanitizeFilename strips any path components from a client supplied name
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(filepath.Base(name))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
