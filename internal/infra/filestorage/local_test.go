package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveURLDelete(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	ctx := context.Background()

	key := "cvs/7/resume.pdf"
	require.NoError(t, storage.Save(ctx, key, "application/pdf", strings.NewReader("%PDF-1.4"), 8))

	data, err := os.ReadFile(filepath.Join(dir, "cvs", "7", "resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	url, err := storage.URL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/cvs/7/resume.pdf", url)

	require.NoError(t, storage.Delete(ctx, key))
	require.NoError(t, storage.Delete(ctx, key), "repeated delete is a no-op")

	_, err = storage.URL(ctx, key, time.Minute)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	storage := NewLocalStorage(t.TempDir(), "")
	ctx := context.Background()

	assert.ErrorIs(t, storage.Save(ctx, "../etc/passwd", "", strings.NewReader("x"), 1), ErrInvalidKey)
	assert.ErrorIs(t, storage.Delete(ctx, "/abs"), ErrInvalidKey)
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("cvs/42", "PDF")
	assert.True(t, strings.HasPrefix(key, "cvs/42/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotEqual(t, key, NewObjectKey("cvs/42", ".pdf"))
}
