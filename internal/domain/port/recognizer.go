package port

import (
	"context"

	"bloodgroup-bot/internal/domain/entity"
)

// TextRecognizer интерфейс OCR-движка
type TextRecognizer interface {
	// Recognize возвращает области текста на изображении в произвольном порядке
	Recognize(ctx context.Context, imageData []byte) ([]entity.TextRegion, error)
}
