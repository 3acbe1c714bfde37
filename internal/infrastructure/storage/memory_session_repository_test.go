package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bloodgroup-bot/internal/domain/entity"
)

func TestMemorySessionRepository_GetCreates(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPatientInfo, s.State)

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, s, again)
}

func TestMemorySessionRepository_Reset(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.NoError(t, s.SubmitPatient(entity.Patient{Name: "John", Age: 30, Gender: entity.GenderMale}))
	require.NoError(t, repo.Save(ctx, s))

	fresh, err := repo.Reset(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPatientInfo, fresh.State)

	got, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, fresh, got)
}
