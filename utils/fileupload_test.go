package utils

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{"Valid PNG", "dish.png", 1024, ""},
		{"Valid JPG", "dish.jpg", 1024, ""},
		{"Valid JPEG uppercase", "DISH.JPEG", 1024, ""},
		{"At the size limit", "dish.png", MaxFileSize, ""},
		{"Too large", "dish.png", MaxFileSize + 1, "FILE_TOO_LARGE"},
		{"Unsupported format", "menu.pdf", 1024, "INVALID_FILE_FORMAT"},
		{"No extension", "dish", 1024, "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(header)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			assert.True(t, errors.As(err, &uploadErr))
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}
