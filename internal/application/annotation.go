package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
	"bloodgroup-bot/internal/infrastructure/imagefmt"
)

// ErrLabelCollision — несколько изображений дают одно имя файла разметки.
var ErrLabelCollision = errors.New("label name collision")

// imageExts — расширения, которые обрабатываются в пакетном режиме.
var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type AnnotationService struct {
	recognizer port.TextRecognizer
	threshold  int
	workers    int
}

// AnnotationOutcome — результат обработки одного изображения.
type AnnotationOutcome struct {
	Image     string
	LabelPath string // пусто, если файл не записан
	Boxes     int
	Skipped   bool // ни одна область не прошла фильтры
	Err       error
}

// BatchReport — сводка по каталогу изображений.
type BatchReport struct {
	Outcomes []AnnotationOutcome
}

func (r BatchReport) count(pred func(AnnotationOutcome) bool) int {
	n := 0
	for _, o := range r.Outcomes {
		if pred(o) {
			n++
		}
	}
	return n
}

func (r BatchReport) Written() int {
	return r.count(func(o AnnotationOutcome) bool { return o.Err == nil && !o.Skipped })
}

func (r BatchReport) Skipped() int {
	return r.count(func(o AnnotationOutcome) bool { return o.Err == nil && o.Skipped })
}

func (r BatchReport) Failed() int {
	return r.count(func(o AnnotationOutcome) bool { return o.Err != nil })
}

// NewAnnotationService создаёт генератор разметки.
// threshold — минимальная уверенность OCR, не включительно.
func NewAnnotationService(recognizer port.TextRecognizer, threshold, workers int) *AnnotationService {
	if workers < 1 {
		workers = 1
	}
	return &AnnotationService{
		recognizer: recognizer,
		threshold:  threshold,
		workers:    workers,
	}
}

// Label распознаёт текст на изображении и строит разметку.
// Второе значение false, если ни одна область не прошла фильтры.
func (s *AnnotationService) Label(ctx context.Context, imageName string, imageData []byte) (entity.LabelFile, bool, error) {
	width, height, err := imagefmt.Size(imageData)
	if err != nil {
		return entity.LabelFile{}, false, err
	}

	regions, err := s.recognizer.Recognize(ctx, imageData)
	if err != nil {
		return entity.LabelFile{}, false, fmt.Errorf("ocr: %w", err)
	}

	file, ok := entity.BuildLabelFile(imageName, regions, width, height, s.threshold)
	return file, ok, nil
}

// AnnotateFile обрабатывает одно изображение и пишет файл разметки в labelsDir.
func (s *AnnotationService) AnnotateFile(ctx context.Context, imagePath, labelsDir string) AnnotationOutcome {
	outcome := AnnotationOutcome{Image: imagePath}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	file, ok, err := s.Label(ctx, filepath.Base(imagePath), data)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if !ok {
		outcome.Skipped = true
		return outcome
	}

	dst := filepath.Join(labelsDir, file.Name)
	if err := os.WriteFile(dst, file.Bytes(), 0644); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.LabelPath = dst
	outcome.Boxes = len(file.Boxes)
	return outcome
}

// AnnotateDir обрабатывает все изображения каталога. Ошибка по одному
// изображению не останавливает остальные.
func (s *AnnotationService) AnnotateDir(ctx context.Context, imagesDir, labelsDir string) (BatchReport, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return BatchReport{}, err
	}
	if err := os.MkdirAll(labelsDir, 0755); err != nil {
		return BatchReport{}, err
	}

	byLabel := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		name := entity.LabelFileName(e.Name())
		byLabel[name] = append(byLabel[name], e.Name())
	}

	var (
		mu     sync.Mutex
		report BatchReport
		images []string
	)
	// card.png и card.jpg пишут в один card.txt: не пишем ни один из них.
	for label, names := range byLabel {
		if len(names) == 1 {
			images = append(images, filepath.Join(imagesDir, names[0]))
			continue
		}
		sort.Strings(names)
		for _, name := range names {
			err := fmt.Errorf("%w: %s is shared by %s", ErrLabelCollision, label, strings.Join(names, ", "))
			log.Printf("Error annotating %s: %v", name, err)
			report.Outcomes = append(report.Outcomes, AnnotationOutcome{
				Image: filepath.Join(imagesDir, name),
				Err:   err,
			})
		}
	}
	sort.Strings(images)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, img := range images {
		img := img
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome := s.AnnotateFile(gctx, img, labelsDir)
			if outcome.Err != nil {
				log.Printf("Error annotating %s: %v", img, outcome.Err)
			}
			mu.Lock()
			report.Outcomes = append(report.Outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	// Горутины возвращают только ошибку отмены контекста.
	_ = g.Wait()

	sort.Slice(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].Image < report.Outcomes[j].Image
	})
	return report, ctx.Err()
}
