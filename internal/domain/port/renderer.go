package port

import (
	"context"
	"errors"

	"bloodgroup-bot/internal/domain/entity"
)

// ErrUnsupportedText — в отчёте есть символы, которые рендерер не может отобразить.
var ErrUnsupportedText = errors.New("text cannot be rendered with the report font")

// ReportRenderer интерфейс генератора документа отчёта
type ReportRenderer interface {
	// Render формирует документ (PDF) по готовому отчёту
	Render(ctx context.Context, report *entity.Report) ([]byte, error)
}
