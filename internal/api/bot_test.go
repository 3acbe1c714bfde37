package telegram

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

func TestParsePatient(t *testing.T) {
	p, err := parsePatient(" John Doe , 34, male")
	require.NoError(t, err)
	require.Equal(t, entity.Patient{Name: "John Doe", Age: 34, Gender: entity.GenderMale}, p)

	for _, bad := range []string{"John Doe", "John, x, Male", "John, 0, Male", ", 30, Male", "John, 30, cat"} {
		_, err := parsePatient(bad)
		require.ErrorIs(t, err, entity.ErrInvalidPatient, "input %q", bad)
	}
}

func TestFormatResult(t *testing.T) {
	patient := entity.Patient{Name: "Jane", Age: 30, Gender: entity.GenderFemale}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	text := formatResult(entity.NewReport(patient, entity.Classify([]string{"A", "D"}), now))
	require.Contains(t, text, "A+ (A Positive)")
	require.Contains(t, text, "A, D")
	require.NotContains(t, text, msgNoMarkers)

	text = formatResult(entity.NewReport(patient, entity.Classify(nil), now))
	require.Contains(t, text, "Unknown")
	require.Contains(t, text, msgNoMarkers)
}

func TestSampleFileID(t *testing.T) {
	id, ok := sampleFileID(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "big"}}})
	require.True(t, ok)
	require.Equal(t, "big", id)

	id, ok = sampleFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/png"}})
	require.True(t, ok)
	require.Equal(t, "doc", id)

	_, ok = sampleFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "application/pdf"}})
	require.False(t, ok)

	_, ok = sampleFileID(&tgbotapi.Message{Text: "hi"})
	require.False(t, ok)
}

func TestReportFileName(t *testing.T) {
	r := &entity.Report{GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.Equal(t, "blood_group_report_20240102_030405.pdf", reportFileName(r))
}

func TestSampleErrorMessage(t *testing.T) {
	require.Equal(t, msgUseNew, sampleErrorMessage(fmt.Errorf("submit: %w", entity.ErrInvalidTransition)))
	require.Equal(t, msgUnsupportedText, sampleErrorMessage(fmt.Errorf("render report: %w", port.ErrUnsupportedText)))
	require.Equal(t, msgProcessingError, sampleErrorMessage(errors.New("inference down")))
}
