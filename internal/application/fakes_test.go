package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"bloodgroup-bot/internal/domain/entity"
)

type fakeDetector struct {
	classes []string
	err     error
	calls   int
}

func (d *fakeDetector) Detect(ctx context.Context, imageData []byte) (*entity.Detection, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	det := &entity.Detection{ImageWidth: 100, ImageHeight: 100}
	for _, c := range d.classes {
		det.Boxes = append(det.Boxes, entity.DetectedBox{Class: c, Confidence: 0.9, Width: 10, Height: 10})
	}
	return det, nil
}

func (d *fakeDetector) Highlight(imageData []byte, detection *entity.Detection) ([]byte, error) {
	return []byte("highlighted"), nil
}

type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(ctx context.Context, report *entity.Report) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF " + report.VerificationPayload()), nil
}

type fakeArchive struct {
	mu      sync.Mutex
	reports []*entity.Report
	err     error
}

func (a *fakeArchive) Store(ctx context.Context, report *entity.Report, document []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, report)
	return a.err
}

type fakeRecognizer struct {
	regions map[int][]entity.TextRegion // по ширине изображения
	err     error
}

func (r *fakeRecognizer) Recognize(ctx context.Context, imageData []byte) ([]entity.TextRegion, error) {
	if r.err != nil {
		return nil, r.err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.New("fake: not an image")
	}
	return r.regions[cfg.Width], nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}
