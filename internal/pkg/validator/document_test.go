package validator

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/testpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{MaxFileSize: 100})

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "ok", filename: "report.pdf", size: 10},
		{name: "upper case extension", filename: "REPORT.PDF", size: 10},
		{name: "exact limit", filename: "a.pdf", size: 100},
		{name: "no name", filename: "  ", size: 10, wantErr: entity.ErrNoFileSelected},
		{name: "wrong extension", filename: "notes.docx", size: 10, wantErr: entity.ErrInvalidExtension},
		{name: "no extension", filename: "pdf", size: 10, wantErr: entity.ErrInvalidExtension},
		{name: "too large", filename: "big.pdf", size: 101, wantErr: entity.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDocument(tt.filename, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, entity.IsValidation(err))
		})
	}
}

func TestReadDocument(t *testing.T) {
	content := testpdf.Build(t, "hello")
	v := NewFileValidator(config.FileUploadConfig{MaxFileSize: int64(len(content))})

	fh := formFile(t, "dir/report.pdf", content)
	file, err := v.ReadDocument(fh)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", file.Filename)
	assert.Equal(t, content, file.Content)

	_, err = v.ReadDocument(nil)
	assert.ErrorIs(t, err, entity.ErrNoFileSelected)

	small := NewFileValidator(config.FileUploadConfig{MaxFileSize: 10})
	_, err = small.ReadDocument(fh)
	assert.ErrorIs(t, err, entity.ErrFileTooLarge)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", SanitizeFilename(`C:\Users\me\report.pdf`))
	assert.Equal(t, "a_b.pdf", SanitizeFilename("a;b.pdf"))
	assert.Equal(t, "quoted.pdf", SanitizeFilename(`"quoted".pdf`))
}

func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	req := multipartRequest(t, "pdf", name, content)
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["pdf"][0]
}

func TestReadRequestDocument(t *testing.T) {
	content := testpdf.Build(t, "request body")
	v := NewFileValidator(config.FileUploadConfig{MaxFileSize: 1 << 20})

	t.Run("file present", func(t *testing.T) {
		req := multipartRequest(t, "pdf", "doc.pdf", content)
		file, err := v.ReadRequestDocument(httptest.NewRecorder(), req, "pdf")
		require.NoError(t, err)
		assert.Equal(t, "doc.pdf", file.Filename)
		assert.Equal(t, content, file.Content)
	})

	t.Run("other field only", func(t *testing.T) {
		req := multipartRequest(t, "attachment", "doc.pdf", content)
		_, err := v.ReadRequestDocument(httptest.NewRecorder(), req, "pdf")
		assert.ErrorIs(t, err, entity.ErrNoFileSelected)
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		_, err := v.ReadRequestDocument(httptest.NewRecorder(), req, "pdf")
		assert.ErrorIs(t, err, entity.ErrNoFileSelected)
	})

	t.Run("wrong extension", func(t *testing.T) {
		req := multipartRequest(t, "pdf", "doc.txt", content)
		_, err := v.ReadRequestDocument(httptest.NewRecorder(), req, "pdf")
		assert.ErrorIs(t, err, entity.ErrInvalidExtension)
	})

	t.Run("body over limit", func(t *testing.T) {
		tiny := NewFileValidator(config.FileUploadConfig{MaxFileSize: 1})
		req := multipartRequest(t, "pdf", "doc.pdf", bytes.Repeat([]byte("x"), multipartOverhead+10))
		_, err := tiny.ReadRequestDocument(httptest.NewRecorder(), req, "pdf")
		assert.ErrorIs(t, err, entity.ErrFileTooLarge)
	})
}

func multipartRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
