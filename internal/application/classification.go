package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

// ErrNoSample — изображение образца не передано.
var ErrNoSample = errors.New("blood sample image is required")

type ClassificationService struct {
	detector port.MarkerDetector
}

// ClassificationOutput содержит результат детекции, группу крови и картинку с подсветкой.
type ClassificationOutput struct {
	Detection      *entity.Detection
	Classification entity.Classification
	Highlighted    []byte
}

// NewClassificationService создаёт сервис определения группы крови.
func NewClassificationService(detector port.MarkerDetector) *ClassificationService {
	return &ClassificationService{detector: detector}
}

// Classify запускает детектор и сопоставляет найденные маркеры группе крови.
func (s *ClassificationService) Classify(ctx context.Context, sample []byte) (*ClassificationOutput, error) {
	if len(sample) == 0 {
		return nil, ErrNoSample
	}
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	detection, err := s.detector.Detect(ctx, sample)
	if err != nil {
		return nil, fmt.Errorf("detect markers: %w", err)
	}

	var highlighted []byte
	if len(detection.Boxes) > 0 {
		highlighted, err = s.detector.Highlight(sample, detection)
		if err != nil {
			log.Printf("Error highlighting markers: %v", err)
		}
	}

	return &ClassificationOutput{
		Detection:      detection,
		Classification: entity.Classify(detection.Classes()),
		Highlighted:    highlighted,
	}, nil
}
