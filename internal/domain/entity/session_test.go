package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSession_DefaultState(t *testing.T) {
	s := NewSession(1, 10)
	require.Equal(t, StateAwaitingPatientInfo, s.State)
	require.Equal(t, int64(1), s.ID)
	require.Equal(t, int64(10), s.ChatID)
}

func TestSession_FullFlow(t *testing.T) {
	s := NewSession(1, 10)
	p := Patient{Name: "John", Age: 40, Gender: GenderMale}

	require.NoError(t, s.SubmitPatient(p))
	require.Equal(t, StateAwaitingSample, s.State)

	require.NoError(t, s.SubmitSample([]byte("img")))
	require.Equal(t, StateClassifying, s.State)

	r := NewReport(p, Classify([]string{"d"}), time.Now())
	require.NoError(t, s.Complete(r))
	require.Equal(t, StateReportReady, s.State)
	require.Nil(t, s.Sample)
	require.Equal(t, GroupOPositive, s.Report.Classification.Group)
}

func TestSession_RejectsOutOfOrder(t *testing.T) {
	s := NewSession(1, 10)
	require.ErrorIs(t, s.SubmitSample([]byte("img")), ErrInvalidTransition)
	require.ErrorIs(t, s.Complete(nil), ErrInvalidTransition)

	require.NoError(t, s.SubmitPatient(Patient{Name: "John", Age: 40, Gender: GenderMale}))
	require.ErrorIs(t, s.SubmitPatient(Patient{Name: "Jane", Age: 20, Gender: GenderFemale}), ErrInvalidTransition)
}

func TestSession_InvalidPatientKeepsState(t *testing.T) {
	s := NewSession(1, 10)
	require.ErrorIs(t, s.SubmitPatient(Patient{Name: "John"}), ErrInvalidPatient)
	require.Equal(t, StateAwaitingPatientInfo, s.State)
	require.Nil(t, s.Patient)
}
