package validator

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/entity"
)

// AllowedExtensions mirrors the page's accept="application/pdf"
var AllowedExtensions = map[string]bool{
	".pdf": true,
}

// Validator validates documents before they are selected for upload
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// MaxFileSize is the configured per-document limit in bytes
func (v *Validator) MaxFileSize() int64 {
	return v.cfg.MaxFileSize
}

// ValidateDocument checks name and size of a document
func (v *Validator) ValidateDocument(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return entity.ErrNoFileSelected
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: pdf)", entity.ErrInvalidExtension, ext)
	}

	if size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, filename, size, v.cfg.MaxFileSize)
	}

	return nil
}

// ReadDocument validates an uploaded form file and reads it into memory
func (v *Validator) ReadDocument(fh *multipart.FileHeader) (*entity.FileData, error) {
	if fh == nil {
		return nil, entity.ErrNoFileSelected
	}

	if err := v.ValidateDocument(fh.Filename, fh.Size); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	// one extra byte tells a lying header apart from an exact fit
	content, err := io.ReadAll(io.LimitReader(f, v.cfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}
	if int64(len(content)) > v.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: file '%s' exceeds %d bytes", entity.ErrFileTooLarge, fh.Filename, v.cfg.MaxFileSize)
	}

	return &entity.FileData{
		Filename: SanitizeFilename(fh.Filename),
		Content:  content,
	}, nil
}

// multipartOverhead is the slack allowed on top of the file itself for
// boundaries, part headers and small form fields
const multipartOverhead = 1 << 20

// ReadRequestDocument reads the document posted in the multipart field of r.
// A request without that file yields ErrNoFileSelected.
func (v *Validator) ReadRequestDocument(w http.ResponseWriter, r *http.Request, field string) (*entity.FileData, error) {
	limit := v.cfg.MaxFileSize + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, fmt.Errorf("%w: request exceeds %d bytes", entity.ErrFileTooLarge, limit)
		case errors.Is(err, http.ErrNotMultipart):
			return nil, entity.ErrNoFileSelected
		default:
			return nil, fmt.Errorf("%w: parse multipart form: %w", entity.ErrMissingField, err)
		}
	}

	_, fh, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, entity.ErrNoFileSelected
		}
		return nil, fmt.Errorf("%w: %s: %w", entity.ErrMissingField, field, err)
	}

	return v.ReadDocument(fh)
}

// SanitizeFilename strips directories and characters that upset multipart
// headers on the way to the RAG service
func SanitizeFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	replacer := strings.NewReplacer(
		"\"", "",
		"\r", "",
		"\n", "",
		";", "_",
	)
	return replacer.Replace(filename)
}
