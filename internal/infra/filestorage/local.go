package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage хранит файлы на локальном диске (для разработки)
// Файлы раздаются сервером по PublicBaseURL
type LocalStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStorage создает хранилище с корнем baseDir
func NewLocalStorage(baseDir, publicBaseURL string) *LocalStorage {
	return &LocalStorage{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// BaseDir корневая директория хранилища
func (fs *LocalStorage) BaseDir() string {
	return fs.baseDir
}

// Save записывает файл в <baseDir>/<key>
func (fs *LocalStorage) Save(_ context.Context, key, _ string, reader io.Reader, _ int64) error {
	if err := validateKey(key); err != nil {
		return err
	}

	fullPath := filepath.Join(fs.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("filestorage: create directory for %s: %w", key, err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("filestorage: create file %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("filestorage: write file %s: %w", fullPath, err)
	}

	return nil
}

// Delete удаляет файл. Отсутствующий файл не является ошибкой
func (fs *LocalStorage) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	fullPath := filepath.Join(fs.baseDir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestorage: delete file %s: %w", fullPath, err)
	}

	return nil
}

// URL возвращает публичную ссылку. ttl не используется
func (fs *LocalStorage) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	fullPath := filepath.Join(fs.baseDir, filepath.FromSlash(key))
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", ErrObjectNotFound
		}
		return "", fmt.Errorf("filestorage: stat %s: %w", fullPath, err)
	}

	return fs.publicBaseURL + "/" + key, nil
}
