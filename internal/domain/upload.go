package domain

import (
	"io"
	"path/filepath"
	"strings"
)

// MaxImageSizeBytes ограничение размера логотипа или фото
const MaxImageSizeBytes = 2 << 20

// imageExtensions допустимые изображения и их MIME-типы
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Upload загруженный через multipart файл
type Upload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// ImageType возвращает расширение и MIME-тип изображения
// ok=false для неподдерживаемых форматов
func (u *Upload) ImageType() (ext, contentType string, ok bool) {
	ext = strings.ToLower(filepath.Ext(u.Filename))
	contentType, ok = imageExtensions[ext]
	return ext, contentType, ok
}
