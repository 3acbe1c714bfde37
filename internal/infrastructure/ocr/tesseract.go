package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

// TesseractRecognizer распознаёт слова через gosseract.
// Клиент tesseract не потокобезопасен, поэтому на каждый вызов создаётся новый.
type TesseractRecognizer struct {
	languages []string
}

// NewTesseractRecognizer создаёт движок с заданными языками.
func NewTesseractRecognizer(languages ...string) *TesseractRecognizer {
	return &TesseractRecognizer{languages: languages}
}

// Recognize возвращает слова с уверенностью и рамками в пикселях.
func (r *TesseractRecognizer) Recognize(ctx context.Context, imageData []byte) ([]entity.TextRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := gosseract.NewClient()
	defer c.Close()

	if len(r.languages) > 0 {
		if err := c.SetLanguage(r.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("bounding boxes: %w", err)
	}
	return regionsFromBoxes(boxes), nil
}

func regionsFromBoxes(boxes []gosseract.BoundingBox) []entity.TextRegion {
	regions := make([]entity.TextRegion, 0, len(boxes))
	for _, b := range boxes {
		regions = append(regions, entity.TextRegion{
			Text:       b.Word,
			Confidence: int(b.Confidence),
			Left:       b.Box.Min.X,
			Top:        b.Box.Min.Y,
			Width:      b.Box.Dx(),
			Height:     b.Box.Dy(),
		})
	}
	return regions
}

var _ port.TextRecognizer = (*TesseractRecognizer)(nil)
