package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectedBoxCenter(t *testing.T) {
	b := DetectedBox{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := b.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestDetectionClasses(t *testing.T) {
	d := &Detection{Boxes: []DetectedBox{{Class: "A"}, {Class: "D"}, {Class: "A"}}}
	require.Equal(t, []string{"A", "D", "A"}, d.Classes())

	var empty *Detection
	require.Nil(t, empty.Classes())
}
