package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout — формат даты в отчёте и QR-коде.
const TimestampLayout = "2006-01-02 15:04:05"

// Report итоговый отчёт по образцу. Не изменяется после создания.
type Report struct {
	ID             uuid.UUID
	Patient        Patient
	Classification Classification
	GeneratedAt    time.Time
}

// NewReport создаёт отчёт с новым идентификатором.
func NewReport(patient Patient, c Classification, now time.Time) *Report {
	return &Report{
		ID:             uuid.New(),
		Patient:        patient,
		Classification: c,
		GeneratedAt:    now,
	}
}

// VerificationPayload — строка, которая кодируется в QR-код.
func (r *Report) VerificationPayload() string {
	return fmt.Sprintf("Patient Name: %s, Blood Group: %s, Date: %s",
		r.Patient.Name, r.Classification.Group, r.GeneratedAt.Format(TimestampLayout))
}
