// Package imagefmt декодирует изображения образцов и тест-карт.
// Кроме jpeg и png поддерживаются bmp, tiff и webp.
package imagefmt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage — пустые данные вместо изображения.
var ErrEmptyImage = errors.New("empty image")

// Size читает только заголовок и возвращает размеры изображения.
func Size(data []byte) (width, height int, err error) {
	if len(data) == 0 {
		return 0, 0, ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, ErrEmptyImage
	}
	return cfg.Width, cfg.Height, nil
}

// Decode полностью декодирует изображение.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}
