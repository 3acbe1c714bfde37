package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition — переход не допускается текущим состоянием сессии.
var ErrInvalidTransition = errors.New("invalid session transition")

// SessionState состояние сценария проверки образца
type SessionState string

const (
	StateAwaitingPatientInfo SessionState = "awaiting_patient_info" // Ожидание данных пациента
	StateAwaitingSample      SessionState = "awaiting_sample"       // Ожидание фото образца
	StateClassifying         SessionState = "classifying"           // Детекция и классификация
	StateReportReady         SessionState = "report_ready"          // Отчёт готов
)

// Session контекст одной проверки: пациент, образец и результат.
// Переходы только вперёд, для новой проверки создаётся новая сессия.
type Session struct {
	ID      int64        // Telegram User ID, 0 для веб-формы
	ChatID  int64        // Telegram Chat ID
	State   SessionState // Текущее состояние
	Patient *Patient
	Sample  []byte
	Report  *Report
}

// NewSession создаёт сессию в начальном состоянии
func NewSession(id, chatID int64) *Session {
	return &Session{
		ID:     id,
		ChatID: chatID,
		State:  StateAwaitingPatientInfo,
	}
}

func (s *Session) transition(from, to SessionState) error {
	if s.State != from {
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrInvalidTransition, from, to, s.State)
	}
	s.State = to
	return nil
}

// SubmitPatient сохраняет данные пациента и ждёт образец.
func (s *Session) SubmitPatient(p Patient) error {
	if s.State != StateAwaitingPatientInfo {
		return fmt.Errorf("%w: patient info in state %s", ErrInvalidTransition, s.State)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.Patient = &p
	return s.transition(StateAwaitingPatientInfo, StateAwaitingSample)
}

// SubmitSample принимает изображение образца и начинает классификацию.
func (s *Session) SubmitSample(image []byte) error {
	if err := s.transition(StateAwaitingSample, StateClassifying); err != nil {
		return err
	}
	s.Sample = image
	return nil
}

// Complete завершает классификацию отчётом.
func (s *Session) Complete(r *Report) error {
	if err := s.transition(StateClassifying, StateReportReady); err != nil {
		return err
	}
	s.Report = r
	s.Sample = nil
	return nil
}
