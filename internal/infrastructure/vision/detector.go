//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"

	"gocv.io/x/gocv"

	"bloodgroup-bot/internal/domain/entity"
)

// YOLODetector запускает ONNX-модель YOLO (v8/v11) через OpenCV DNN.
type YOLODetector struct {
	Classes        []string
	InputSize      int
	ScoreThreshold float32
	NMSThreshold   float32

	mu  sync.Mutex
	net gocv.Net
}

// NewYOLODetector загружает веса модели из modelPath.
func NewYOLODetector(modelPath string, classes []string) (*YOLODetector, error) {
	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model %s", modelPath)
	}
	return &YOLODetector{
		Classes:        classes,
		InputSize:      640,
		ScoreThreshold: 0.25,
		NMSThreshold:   0.45,
		net:            net,
	}, nil
}

// Close освобождает сеть.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

// Detect прогоняет изображение через модель и возвращает найденные маркеры.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) (*entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	size := image.Pt(d.InputSize, d.InputSize)
	blob := gocv.BlobFromImage(mat, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	// Сеть OpenCV не потокобезопасна.
	d.mu.Lock()
	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	d.mu.Unlock()
	defer out.Close()

	// Выход YOLOv8/v11: [1, 4+nc, N], координаты в масштабе входа сети.
	dims := out.Size()
	if len(dims) != 3 || dims[1] < 5 {
		return nil, fmt.Errorf("unexpected model output shape %v", dims)
	}
	attrs, n := dims[1], dims[2]
	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read model output: %w", err)
	}

	scaleX := float64(mat.Cols()) / float64(d.InputSize)
	scaleY := float64(mat.Rows()) / float64(d.InputSize)

	rects := make([]image.Rectangle, 0)
	scores := make([]float32, 0)
	classIDs := make([]int, 0)
	for i := 0; i < n; i++ {
		best, bestScore := -1, float32(0)
		for c := 4; c < attrs; c++ {
			if s := data[c*n+i]; s > bestScore {
				best, bestScore = c-4, s
			}
		}
		if best < 0 || bestScore < d.ScoreThreshold {
			continue
		}

		cx, cy := float64(data[i]), float64(data[n+i])
		w, h := float64(data[2*n+i]), float64(data[3*n+i])
		x0 := int((cx - w/2) * scaleX)
		y0 := int((cy - h/2) * scaleY)
		rects = append(rects, image.Rect(x0, y0, x0+int(w*scaleX), y0+int(h*scaleY)))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, best)
	}

	boxes := make([]entity.DetectedBox, 0, len(rects))
	if len(rects) > 0 {
		for _, idx := range gocv.NMSBoxes(rects, scores, d.ScoreThreshold, d.NMSThreshold) {
			r := rects[idx]
			boxes = append(boxes, entity.DetectedBox{
				Class:      d.className(classIDs[idx]),
				Confidence: float64(scores[idx]),
				X:          r.Min.X,
				Y:          r.Min.Y,
				Width:      r.Dx(),
				Height:     r.Dy(),
			})
		}
	}

	return &entity.Detection{
		ImageWidth:  mat.Cols(),
		ImageHeight: mat.Rows(),
		Boxes:       boxes,
	}, nil
}

func (d *YOLODetector) className(id int) string {
	if id >= 0 && id < len(d.Classes) {
		return d.Classes[id]
	}
	return fmt.Sprintf("class_%d", id)
}

// Highlight рисует рамки с подписями классов и возвращает новую картинку.
func (d *YOLODetector) Highlight(imageData []byte, detection *entity.Detection) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	red := color.RGBA{R: 220, A: 255}
	for _, b := range detection.Boxes {
		rect := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
		gocv.Rectangle(&mat, rect, red, 2)
		label := fmt.Sprintf("%s %.2f", b.Class, b.Confidence)
		gocv.PutText(&mat, label, image.Pt(b.X, maxInt(b.Y-6, 12)), gocv.FontHersheySimplex, 0.5, red, 1)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
