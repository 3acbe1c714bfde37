package port

import (
	"context"

	"bloodgroup-bot/internal/domain/entity"
)

// ReportArchive интерфейс архива выданных отчётов
type ReportArchive interface {
	// Store сохраняет отчёт и сгенерированный документ
	Store(ctx context.Context, report *entity.Report, document []byte) error
}
