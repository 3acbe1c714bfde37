package port

import (
	"context"

	"bloodgroup-bot/internal/domain/entity"
)

// MarkerDetector интерфейс детектора маркеров на образце крови
type MarkerDetector interface {
	// Detect анализирует изображение и возвращает найденные объекты
	Detect(ctx context.Context, imageData []byte) (*entity.Detection, error)

	// Highlight создаёт изображение с подсветкой найденных объектов
	Highlight(imageData []byte, detection *entity.Detection) ([]byte, error)
}
