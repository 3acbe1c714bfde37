package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bloodgroup-bot/internal/domain/entity"
)

type Config struct {
	TelegramToken string
	HTTPAddr      string

	ModelPath       string   // веса YOLO в формате ONNX, используются со сборкой gocv
	ModelClasses    []string // имена классов модели в порядке обучения
	InferenceURL    string   // внешний сервис инференса, если локальной модели нет
	DetectorTimeout time.Duration

	LogoPath string
	FontPath string // TTF для PDF; без него имена вне cp1252 отклоняются

	OCRConfidenceThreshold int
	OCRLanguage            string

	DatabaseURL string

	ClinicName    string
	ClinicAddress string
	ClinicContact string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	threshold, err := getInt("OCR_CONFIDENCE_THRESHOLD", entity.DefaultConfidenceThreshold)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getEnv("DETECTOR_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("DETECTOR_TIMEOUT: %w", err)
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),

		ModelPath:       os.Getenv("MODEL_PATH"),
		ModelClasses:    splitList(getEnv("MODEL_CLASSES", "a,b,d")),
		InferenceURL:    os.Getenv("INFERENCE_URL"),
		DetectorTimeout: timeout,

		LogoPath: os.Getenv("LOGO_PATH"),
		FontPath: os.Getenv("REPORT_FONT_PATH"),

		OCRConfidenceThreshold: threshold,
		OCRLanguage:            getEnv("OCR_LANGUAGE", "eng"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ClinicName:    getEnv("CLINIC_NAME", "XYZ Medical Center"),
		ClinicAddress: getEnv("CLINIC_ADDRESS", "123 Health St, City, Country"),
		ClinicContact: getEnv("CLINIC_CONTACT", "+123456789 | Email: info@xyzmedical.com"),
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
