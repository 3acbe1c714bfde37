package container

import (
	app "bloodgroup-bot/internal/application"
	"bloodgroup-bot/internal/domain/port"
)

type Container struct {
	SessionService        *app.SessionService
	ClassificationService *app.ClassificationService
	ReportService         *app.ReportService
}

// New собирает сервисы сценария проверки образца. archive может быть nil.
func New(sessions port.SessionRepository, detector port.MarkerDetector, renderer port.ReportRenderer, archive port.ReportArchive) *Container {
	classificationService := app.NewClassificationService(detector)
	reportService := app.NewReportService(renderer, archive)
	sessionService := app.NewSessionService(sessions, classificationService, reportService)

	return &Container{
		SessionService:        sessionService,
		ClassificationService: classificationService,
		ReportService:         reportService,
	}
}
