package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"bloodgroup-bot/internal/domain/entity"
)

func TestClassificationService_Classify(t *testing.T) {
	svc := NewClassificationService(&fakeDetector{classes: []string{"A", "D", "A"}})

	out, err := svc.Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.Equal(t, entity.GroupAPositive, out.Classification.Group)
	require.Equal(t, []string{"a", "d"}, out.Classification.Markers.Labels())
	require.Equal(t, []byte("highlighted"), out.Highlighted)
}

func TestClassificationService_NoMarkers(t *testing.T) {
	svc := NewClassificationService(&fakeDetector{})

	out, err := svc.Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.True(t, out.Classification.NoMarkers)
	require.Equal(t, entity.GroupUnknown, out.Classification.Group)
	require.Nil(t, out.Highlighted)
}

func TestClassificationService_UnrelatedLabelsOnly(t *testing.T) {
	svc := NewClassificationService(&fakeDetector{classes: []string{"clot"}})

	out, err := svc.Classify(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.False(t, out.Classification.NoMarkers)
	require.Equal(t, entity.GroupONegative, out.Classification.Group)
}

func TestClassificationService_Errors(t *testing.T) {
	svc := NewClassificationService(&fakeDetector{err: errors.New("model down")})

	_, err := svc.Classify(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoSample)

	_, err = svc.Classify(context.Background(), []byte("img"))
	require.ErrorContains(t, err, "model down")

	_, err = NewClassificationService(nil).Classify(context.Background(), []byte("img"))
	require.Error(t, err)
}
