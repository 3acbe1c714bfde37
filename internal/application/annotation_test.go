package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bloodgroup-bot/internal/domain/entity"
)

func TestAnnotationService_Label(t *testing.T) {
	rec := &fakeRecognizer{regions: map[int][]entity.TextRegion{
		200: {
			{Text: "A", Confidence: 95, Left: 0, Top: 0, Width: 200, Height: 100},
			{Text: "B", Confidence: 60, Left: 0, Top: 0, Width: 10, Height: 10},
		},
	}}
	svc := NewAnnotationService(rec, entity.DefaultConfidenceThreshold, 2)

	file, ok, err := svc.Label(context.Background(), "card.png", pngBytes(t, 200, 100))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "card.txt", file.Name)
	require.Equal(t, "0 0.500000 0.500000 1.000000 1.000000", string(file.Bytes()))
}

func TestAnnotationService_LabelErrors(t *testing.T) {
	svc := NewAnnotationService(&fakeRecognizer{err: errors.New("tesseract missing")}, 60, 1)

	_, _, err := svc.Label(context.Background(), "x.png", []byte("broken"))
	require.Error(t, err)

	_, _, err = svc.Label(context.Background(), "x.png", pngBytes(t, 10, 10))
	require.ErrorContains(t, err, "tesseract missing")
}

func TestAnnotationService_AnnotateDir(t *testing.T) {
	imagesDir := t.TempDir()
	labelsDir := filepath.Join(t.TempDir(), "labels")

	write := func(name string, data []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(imagesDir, name), data, 0644))
	}
	write("labeled.png", pngBytes(t, 100, 50))
	write("empty.jpg", pngBytes(t, 80, 80))
	write("broken.png", []byte("not an image"))
	write("notes.md", []byte("ignored"))
	require.NoError(t, os.Mkdir(filepath.Join(imagesDir, "sub.png"), 0755))

	rec := &fakeRecognizer{regions: map[int][]entity.TextRegion{
		100: {
			{Text: "+", Confidence: 70, Left: 25, Top: 0, Width: 50, Height: 50},
			{Text: "hello", Confidence: 99},
		},
		80: {{Text: "A", Confidence: 30}},
	}}
	svc := NewAnnotationService(rec, entity.DefaultConfidenceThreshold, 3)

	report, err := svc.AnnotateDir(context.Background(), imagesDir, labelsDir)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 3)
	require.Equal(t, 1, report.Written())
	require.Equal(t, 1, report.Skipped())
	require.Equal(t, 1, report.Failed())

	data, err := os.ReadFile(filepath.Join(labelsDir, "labeled.txt"))
	require.NoError(t, err)
	require.Equal(t, "2 0.500000 0.500000 0.500000 1.000000", string(data))

	_, err = os.Stat(filepath.Join(labelsDir, "empty.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestAnnotationService_AnnotateDirMissing(t *testing.T) {
	svc := NewAnnotationService(&fakeRecognizer{}, 60, 1)
	_, err := svc.AnnotateDir(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
}

func TestAnnotationService_AnnotateDirLabelCollision(t *testing.T) {
	imagesDir := t.TempDir()
	labelsDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "card.png"), pngBytes(t, 100, 50), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "card.jpg"), pngBytes(t, 120, 50), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "other.png"), pngBytes(t, 100, 50), 0644))

	rec := &fakeRecognizer{regions: map[int][]entity.TextRegion{
		100: {{Text: "A", Confidence: 90, Left: 0, Top: 0, Width: 10, Height: 10}},
		120: {{Text: "B", Confidence: 90, Left: 0, Top: 0, Width: 10, Height: 10}},
	}}
	svc := NewAnnotationService(rec, entity.DefaultConfidenceThreshold, 4)

	report, err := svc.AnnotateDir(context.Background(), imagesDir, labelsDir)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 3)
	require.Equal(t, 1, report.Written())
	require.Equal(t, 2, report.Failed())

	require.Equal(t, filepath.Join(imagesDir, "card.jpg"), report.Outcomes[0].Image)
	require.ErrorIs(t, report.Outcomes[0].Err, ErrLabelCollision)
	require.Equal(t, filepath.Join(imagesDir, "card.png"), report.Outcomes[1].Image)
	require.ErrorIs(t, report.Outcomes[1].Err, ErrLabelCollision)

	_, err = os.Stat(filepath.Join(labelsDir, "card.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(labelsDir, "other.txt"))
	require.NoError(t, err)
}
