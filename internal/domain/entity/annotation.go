package entity

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultConfidenceThreshold — минимальная уверенность OCR (не включительно).
const DefaultConfidenceThreshold = 60

// Классы разметки для надписей на тест-карте.
const (
	ClassA    = 0
	ClassB    = 1
	ClassPlus = 2
)

// LabelExt — расширение файлов разметки.
const LabelExt = ".txt"

// TextRegion — область текста, найденная OCR на изображении.
type TextRegion struct {
	Text       string
	Confidence int // 0..100
	Left       int
	Top        int
	Width      int
	Height     int
}

// NormalizedBox — рамка в долях размера изображения.
type NormalizedBox struct {
	ClassID int
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

func (b NormalizedBox) String() string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", b.ClassID, b.CenterX, b.CenterY, b.Width, b.Height)
}

// ClassForText возвращает класс для распознанного текста.
// "A" и "B" сравниваются без учёта регистра, "+" — только точно.
func ClassForText(text string) (int, bool) {
	switch {
	case strings.EqualFold(text, "A"):
		return ClassA, true
	case strings.EqualFold(text, "B"):
		return ClassB, true
	case text == "+":
		return ClassPlus, true
	}
	return 0, false
}

// Normalize переводит пиксельную рамку в относительные координаты.
func (r TextRegion) Normalize(classID, imageWidth, imageHeight int) NormalizedBox {
	w, h := float64(imageWidth), float64(imageHeight)
	return NormalizedBox{
		ClassID: classID,
		CenterX: (float64(r.Left) + float64(r.Width)/2) / w,
		CenterY: (float64(r.Top) + float64(r.Height)/2) / h,
		Width:   float64(r.Width) / w,
		Height:  float64(r.Height) / h,
	}
}

// LabelFile — разметка одного изображения.
type LabelFile struct {
	Name  string
	Boxes []NormalizedBox
}

// LabelFileName заменяет расширение изображения на .txt.
func LabelFileName(imageName string) string {
	base := filepath.Base(imageName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + LabelExt
}

// BuildLabelFile фильтрует области OCR и собирает файл разметки.
// Возвращает false, если ни одна область не прошла фильтры.
func BuildLabelFile(imageName string, regions []TextRegion, imageWidth, imageHeight, threshold int) (LabelFile, bool) {
	file := LabelFile{Name: LabelFileName(imageName)}
	if imageWidth <= 0 || imageHeight <= 0 {
		return file, false
	}

	for _, r := range regions {
		if r.Confidence <= threshold {
			continue
		}
		classID, ok := ClassForText(r.Text)
		if !ok {
			continue
		}
		file.Boxes = append(file.Boxes, r.Normalize(classID, imageWidth, imageHeight))
	}

	return file, len(file.Boxes) > 0
}

// Bytes сериализует разметку: строка на рамку, без перевода строки в конце.
func (f LabelFile) Bytes() []byte {
	lines := make([]string, 0, len(f.Boxes))
	for _, b := range f.Boxes {
		lines = append(lines, b.String())
	}
	return []byte(strings.Join(lines, "\n"))
}
