package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"urbanset/services/storage"
	"urbanset/utils"

	"github.com/gin-gonic/gin"
)

// allowedUploadTypes lists the extensions accepted for profile documents.
var allowedUploadTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// uploadSet keeps the opened multipart files so they can be closed once the
// service call returns.
type uploadSet struct {
	files []multipart.File
}

func (u *uploadSet) Close() {
	for _, f := range u.files {
		_ = f.Close()
	}
}

// formUpload opens the named multipart file. A missing field yields nil.
func (u *uploadSet) formUpload(c *gin.Context, field string, maxBytes int64) (*storage.Upload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, utils.NewValidationError("could not read %s upload", field)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadTypes[ext] {
		return nil, utils.NewValidationError("%s must be an image or a PDF", field)
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, utils.NewValidationError("%s exceeds the %d byte limit", field, maxBytes)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, utils.NewUnexpectedError("could not open "+field+" upload", err)
	}
	u.files = append(u.files, f)

	return &storage.Upload{
		Reader:      f,
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// formList reads a list field sent either repeated or comma separated.
func formList(c *gin.Context, field string) ([]string, bool) {
	values, ok := c.GetPostFormArray(field)
	if !ok {
		return nil, false
	}
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}

func formInt(c *gin.Context, field string) (*int, error) {
	raw, ok := c.GetPostForm(field)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, utils.NewValidationError("%s must be a whole number", field)
	}
	return &n, nil
}

func formFloat(c *gin.Context, field string) (*float64, error) {
	raw, ok := c.GetPostForm(field)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, utils.NewValidationError("%s must be a number", field)
	}
	return &f, nil
}

func formString(c *gin.Context, field string) *string {
	raw, ok := c.GetPostForm(field)
	if !ok {
		return nil
	}
	return &raw
}
