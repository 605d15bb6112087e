// Package storage хранит картинки объявлений: в локальном каталоге или в S3-совместимом хранилище.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStorage сохраняет картинку и возвращает её публичный URL.
type ImageStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete убирает объект, например загруженный под несохранённое объявление.
	Delete(ctx context.Context, key string) error
}

// ObjectKey строит ключ объекта вида items/{itemId}/{uuid}.{ext}.
func ObjectKey(itemID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("items/%d/%s%s", itemID, uuid.New().String(), ext)
}
