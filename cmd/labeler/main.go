package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"bloodgroup-bot/config"
	app "bloodgroup-bot/internal/application"
	"bloodgroup-bot/internal/domain/port"
	"bloodgroup-bot/internal/infrastructure/ocr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	imagesDir := flag.String("images", "images", "Directory with test card images (.jpg, .jpeg, .png)")
	labelsDir := flag.String("labels", "labels", "Directory for generated label files")
	engine := flag.String("engine", "tesseract", "OCR engine: tesseract or textract")
	threshold := flag.Int("threshold", cfg.OCRConfidenceThreshold, "Keep OCR words with confidence strictly above this value")
	workers := flag.Int("workers", runtime.NumCPU(), "Images processed in parallel")
	lang := flag.String("lang", cfg.OCRLanguage, "Tesseract language")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-images dir] [-labels dir] [-engine tesseract|textract] [-threshold 60]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var recognizer port.TextRecognizer
	switch *engine {
	case "tesseract":
		recognizer = ocr.NewTesseractRecognizer(*lang)
	case "textract":
		recognizer, err = ocr.NewTextractRecognizer()
		if err != nil {
			log.Fatalf("Failed to create textract client: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := app.NewAnnotationService(recognizer, *threshold, *workers)
	report, err := svc.AnnotateDir(ctx, *imagesDir, *labelsDir)
	if err != nil {
		log.Fatal(err)
	}

	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(os.Stderr, "[ERROR] %s: %v\n", o.Image, o.Err)
		case o.Skipped:
			fmt.Printf("[SKIP] %s: no labels\n", o.Image)
		default:
			fmt.Printf("[INFO] %s: %d boxes -> %s\n", o.Image, o.Boxes, o.LabelPath)
		}
	}
	fmt.Printf("written=%d skipped=%d failed=%d\n", report.Written(), report.Skipped(), report.Failed())

	if report.Failed() > 0 {
		os.Exit(1)
	}
}
