package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/infrastructure/imagefmt"
)

var boxColor = color.RGBA{R: 220, A: 255}

const boxThickness = 2

// drawBoxes рисует рамки и подписи классов поверх изображения.
func drawBoxes(imageData []byte, detection *entity.Detection) ([]byte, error) {
	src, _, err := imagefmt.Decode(imageData)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	if detection != nil {
		for _, box := range detection.Boxes {
			rect := image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height).Intersect(dst.Bounds())
			if rect.Empty() {
				continue
			}
			strokeRect(dst, rect)
			label(dst, fmt.Sprintf("%s %.2f", box.Class, box.Confidence), rect.Min)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strokeRect(dst *image.RGBA, r image.Rectangle) {
	fill := image.NewUniform(boxColor)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+boxThickness),
		image.Rect(r.Min.X, r.Max.Y-boxThickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+boxThickness, r.Max.Y),
		image.Rect(r.Max.X-boxThickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), fill, image.Point{}, draw.Src)
	}
}

func label(dst *image.RGBA, text string, at image.Point) {
	y := at.Y - 4
	if y < basicfont.Face7x13.Height {
		y = at.Y + basicfont.Face7x13.Height
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(boxColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X+2, y),
	}
	d.DrawString(text)
}
