package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"bloodgroup-bot/config"
	telegram "bloodgroup-bot/internal/api"
	"bloodgroup-bot/internal/api/web"
	"bloodgroup-bot/internal/container"
	"bloodgroup-bot/internal/domain/port"
	"bloodgroup-bot/internal/infrastructure/report"
	"bloodgroup-bot/internal/infrastructure/storage"
	"bloodgroup-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	detector := newDetector(ctx, cfg)

	renderer := report.NewPDFRenderer(report.Clinic{
		Name:    cfg.ClinicName,
		Address: cfg.ClinicAddress,
		Contact: cfg.ClinicContact,
	}, cfg.LogoPath, cfg.FontPath)

	// Архив отчётов необязателен
	var archive port.ReportArchive
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(5)
		db.SetConnMaxLifetime(time.Hour)

		pgArchive := storage.NewPostgresReportArchive(db)
		migrateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := pgArchive.Migrate(migrateCtx); err != nil {
			log.Fatalf("Failed to prepare report archive: %v", err)
		}
		cancel()
		archive = pgArchive
		log.Println("Report archive: postgres")
	}

	// Собираем сервисы приложения
	appContainer := container.New(storage.NewMemorySessionRepository(), detector, renderer, archive)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           web.NewHandler(appContainer.SessionService).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Web form listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.SessionService)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		go func() {
			log.Println("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				log.Printf("Bot error: %v", err)
			}
		}()
	} else {
		log.Println("TELEGRAM_TOKEN is not set, bot disabled")
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
}

// newDetector выбирает локальную модель (сборка с тегом gocv) или внешний сервис.
func newDetector(ctx context.Context, cfg *config.Config) port.MarkerDetector {
	if cfg.ModelPath != "" {
		yolo, err := vision.NewYOLODetector(cfg.ModelPath, cfg.ModelClasses)
		if err == nil {
			log.Printf("Detector: local model %s", cfg.ModelPath)
			return yolo
		}
		log.Printf("Local model unavailable: %v", err)
	}

	if cfg.InferenceURL == "" {
		log.Fatal("MODEL_PATH (with gocv build) or INFERENCE_URL is required")
	}

	remote := vision.NewHTTPDetector(cfg.InferenceURL, cfg.DetectorTimeout)
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := remote.CheckHealth(checkCtx); err != nil {
		log.Printf("Warning: inference service not available: %v", err)
	}
	log.Printf("Detector: inference service %s", cfg.InferenceURL)
	return remote
}
