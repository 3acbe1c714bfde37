//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"bloodgroup-bot/internal/domain/entity"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// YOLODetector — заглушка для сборки без OpenCV.
type YOLODetector struct {
	Classes        []string
	InputSize      int
	ScoreThreshold float32
	NMSThreshold   float32
}

// NewYOLODetector возвращает ошибку, если сборка без тега gocv.
func NewYOLODetector(modelPath string, classes []string) (*YOLODetector, error) {
	_ = modelPath
	_ = classes
	return nil, errNoGoCV
}

// Close ничего не делает.
func (d *YOLODetector) Close() error { return nil }

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) (*entity.Detection, error) {
	_ = ctx
	_ = imageData
	return nil, errNoGoCV
}

// Highlight возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Highlight(imageData []byte, detection *entity.Detection) ([]byte, error) {
	_ = imageData
	_ = detection
	return nil, errNoGoCV
}
