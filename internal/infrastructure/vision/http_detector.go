package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

// HTTPDetector отправляет изображение во внешний сервис инференса
// (Python-процесс с весами YOLO) и разбирает ответ.
type HTTPDetector struct {
	inferenceURL string
	client       *http.Client
}

// NewHTTPDetector создаёт адаптер к сервису инференса.
func NewHTTPDetector(inferenceURL string, timeout time.Duration) *HTTPDetector {
	return &HTTPDetector{
		inferenceURL: inferenceURL,
		client:       &http.Client{Timeout: timeout},
	}
}

type inferenceBox struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

type inferenceResponse struct {
	Detections  []inferenceBox `json:"detections"`
	ImageWidth  int            `json:"image_width"`
	ImageHeight int            `json:"image_height"`
}

// Detect выполняет inference через внешний сервис
func (d *HTTPDetector) Detect(ctx context.Context, imageData []byte) (*entity.Detection, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "sample.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(imageData)); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.inferenceURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	boxes := make([]entity.DetectedBox, 0, len(result.Detections))
	for _, b := range result.Detections {
		boxes = append(boxes, entity.DetectedBox{
			Class:      b.Class,
			Confidence: b.Confidence,
			X:          b.X,
			Y:          b.Y,
			Width:      b.Width,
			Height:     b.Height,
		})
	}

	return &entity.Detection{
		ImageWidth:  result.ImageWidth,
		ImageHeight: result.ImageHeight,
		Boxes:       boxes,
	}, nil
}

// Highlight рисует рамки средствами Go, без OpenCV.
func (d *HTTPDetector) Highlight(imageData []byte, detection *entity.Detection) ([]byte, error) {
	return drawBoxes(imageData, detection)
}

// CheckHealth проверяет доступность сервиса инференса
func (d *HTTPDetector) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.inferenceURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}

	return nil
}

var _ port.MarkerDetector = (*HTTPDetector)(nil)
