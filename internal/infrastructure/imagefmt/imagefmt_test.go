package imagefmt

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestSize(t *testing.T) {
	w, h, err := Size(encodePNG(t, 64, 32))
	require.NoError(t, err)
	require.Equal(t, 64, w)
	require.Equal(t, 32, h)
}

func TestSize_Errors(t *testing.T) {
	_, _, err := Size(nil)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, _, err = Size([]byte("not an image"))
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	img, format, err := Decode(encodePNG(t, 5, 7))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 5, img.Bounds().Dx())
}
