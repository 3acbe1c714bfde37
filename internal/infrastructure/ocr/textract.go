package ocr

import (
	"context"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
	"bloodgroup-bot/internal/infrastructure/imagefmt"
)

// TextractRecognizer распознаёт слова через AWS Textract.
// Reference: https://docs.aws.amazon.com/textract/
type TextractRecognizer struct {
	client textractiface.TextractAPI
}

// NewTextractRecognizer берёт креды и регион из стандартной конфигурации AWS.
func NewTextractRecognizer() (*TextractRecognizer, error) {
	s, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &TextractRecognizer{client: textract.New(s, aws.NewConfig().WithMaxRetries(3))}, nil
}

// Recognize возвращает слова (блоки WORD). Textract отдаёт рамки в долях
// изображения, они переводятся обратно в пиксели.
func (r *TextractRecognizer) Recognize(ctx context.Context, imageData []byte) ([]entity.TextRegion, error) {
	width, height, err := imagefmt.Size(imageData)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectDocumentTextWithContext(ctx, &textract.DetectDocumentTextInput{
		Document: &textract.Document{Bytes: imageData},
	})
	if err != nil {
		return nil, fmt.Errorf("detect document text: %w", err)
	}

	w, h := float64(width), float64(height)
	regions := make([]entity.TextRegion, 0, len(out.Blocks))
	for _, b := range out.Blocks {
		if aws.StringValue(b.BlockType) != textract.BlockTypeWord {
			continue
		}
		if b.Geometry == nil || b.Geometry.BoundingBox == nil {
			continue
		}
		bb := b.Geometry.BoundingBox
		regions = append(regions, entity.TextRegion{
			Text:       aws.StringValue(b.Text),
			Confidence: int(aws.Float64Value(b.Confidence)),
			Left:       int(math.Round(aws.Float64Value(bb.Left) * w)),
			Top:        int(math.Round(aws.Float64Value(bb.Top) * h)),
			Width:      int(math.Round(aws.Float64Value(bb.Width) * w)),
			Height:     int(math.Round(aws.Float64Value(bb.Height) * h)),
		})
	}
	return regions, nil
}

var _ port.TextRecognizer = (*TextractRecognizer)(nil)
