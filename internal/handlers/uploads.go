package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/nsmthethwa44/Technova-API/internal/storage"
)

// saveUpload stores the single optional file under the named form field
// in object storage and returns its key, or "" when no file was sent.
func saveUpload(ctx context.Context, media *storage.Storage, form *multipart.Form, field, prefix string) (string, error) {
	files := form.File[field]
	if len(files) == 0 {
		return "", nil
	}
	if len(files) > 1 {
		return "", fmt.Errorf("only one %s file is allowed", field)
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", field, err)
	}

	data, err := readFileLimited(file, maxUploadBytes)
	_ = file.Close()
	if err != nil {
		return "", err
	}
	if media == nil {
		return "", errors.New("file uploads are not configured")
	}

	key := fmt.Sprintf("%s/%s_%d%s", prefix, field, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if err := media.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("failed to store %s file: %w", field, err)
	}
	return key, nil
}
