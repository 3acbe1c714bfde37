package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

type ReportService struct {
	renderer port.ReportRenderer
	archive  port.ReportArchive
	now      func() time.Time
}

// NewReportService создаёт сервис выпуска отчётов. archive может быть nil.
func NewReportService(renderer port.ReportRenderer, archive port.ReportArchive) *ReportService {
	return &ReportService{
		renderer: renderer,
		archive:  archive,
		now:      time.Now,
	}
}

// Issue создаёт отчёт, рендерит документ и сохраняет его в архив.
// Ошибка архива не мешает выдать отчёт пользователю.
func (s *ReportService) Issue(ctx context.Context, patient entity.Patient, c entity.Classification) (*entity.Report, []byte, error) {
	report := entity.NewReport(patient, c, s.now())

	document, err := s.renderer.Render(ctx, report)
	if err != nil {
		return nil, nil, fmt.Errorf("render report: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.Store(ctx, report, document); err != nil {
			log.Printf("Error archiving report %s: %v", report.ID, err)
		}
	}

	return report, document, nil
}
