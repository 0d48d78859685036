package filestorage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrObjectNotFound возвращается, когда объект отсутствует в хранилище
	ErrObjectNotFound = errors.New("filestorage: object not found")

	// ErrInvalidKey возвращается для ключей, выходящих за пределы хранилища
	ErrInvalidKey = errors.New("filestorage: invalid object key")
)

// Storage хранилище загружаемых файлов (CV, логотипы, фото)
type Storage interface {
	// Save сохраняет содержимое reader под ключом key
	Save(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	// Delete удаляет объект. Отсутствие объекта не является ошибкой
	Delete(ctx context.Context, key string) error
	// URL возвращает ссылку для скачивания, действующую не меньше ttl
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// NewObjectKey генерирует уникальный ключ вида <prefix>/<uuid><ext>
func NewObjectKey(prefix, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(prefix, uuid.NewString()+ext)
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
