package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"OCR_CONFIDENCE_THRESHOLD", "DETECTOR_TIMEOUT", "MODEL_CLASSES", "HTTP_ADDR", "MODEL_PATH", "LOGO_PATH", "REPORT_FONT_PATH"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 60, cfg.OCRConfidenceThreshold)
	require.Equal(t, 30*time.Second, cfg.DetectorTimeout)
	require.Equal(t, []string{"a", "b", "d"}, cfg.ModelClasses)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Empty(t, cfg.LogoPath)
	require.Empty(t, cfg.FontPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OCR_CONFIDENCE_THRESHOLD", "75")
	t.Setenv("DETECTOR_TIMEOUT", "5s")
	t.Setenv("MODEL_CLASSES", " A, B ,D,")
	t.Setenv("MODEL_PATH", "/models/best.onnx")
	t.Setenv("REPORT_FONT_PATH", "/fonts/DejaVuSans.ttf")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 75, cfg.OCRConfidenceThreshold)
	require.Equal(t, 5*time.Second, cfg.DetectorTimeout)
	require.Equal(t, []string{"A", "B", "D"}, cfg.ModelClasses)
	require.Equal(t, "/models/best.onnx", cfg.ModelPath)
	require.Equal(t, "/fonts/DejaVuSans.ttf", cfg.FontPath)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	t.Setenv("OCR_CONFIDENCE_THRESHOLD", "high")
	_, err := Load()
	require.Error(t, err)
}
