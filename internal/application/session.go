package app

import (
	"context"
	"fmt"
	"log"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

type SessionService struct {
	repo           port.SessionRepository
	classification *ClassificationService
	reports        *ReportService
}

// SampleOutput — итог обработки образца.
type SampleOutput struct {
	Session     *entity.Session
	Report      *entity.Report
	Document    []byte
	Highlighted []byte
}

func NewSessionService(repo port.SessionRepository, classification *ClassificationService, reports *ReportService) *SessionService {
	return &SessionService{
		repo:           repo,
		classification: classification,
		reports:        reports,
	}
}

func (s *SessionService) Get(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// Begin начинает новую проверку.
func (s *SessionService) Begin(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.repo.Reset(ctx, userID, chatID)
}

// Cancel сбрасывает текущую проверку.
func (s *SessionService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	return s.repo.Reset(ctx, userID, chatID)
}

func (s *SessionService) SubmitPatient(ctx context.Context, userID, chatID int64, patient entity.Patient) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := session.SubmitPatient(patient); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SubmitSample обрабатывает фото образца в сохранённой сессии.
// При ошибке детектора создаётся новая сессия с теми же данными пациента,
// чтобы можно было отправить другое фото.
func (s *SessionService) SubmitSample(ctx context.Context, userID, chatID int64, sample []byte) (*SampleOutput, error) {
	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	out, procErr := s.process(ctx, session, sample)
	if procErr != nil && session.State == entity.StateClassifying {
		retry := entity.NewSession(userID, chatID)
		if err := retry.SubmitPatient(*session.Patient); err != nil {
			return nil, err
		}
		session = retry
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	if procErr != nil {
		return nil, procErr
	}

	return out, nil
}

// Run проводит одноразовую проверку без сохранения сессии (веб-форма).
func (s *SessionService) Run(ctx context.Context, patient entity.Patient, sample []byte) (*SampleOutput, error) {
	session := entity.NewSession(0, 0)
	if err := session.SubmitPatient(patient); err != nil {
		return nil, err
	}
	return s.process(ctx, session, sample)
}

func (s *SessionService) process(ctx context.Context, session *entity.Session, sample []byte) (*SampleOutput, error) {
	if len(sample) == 0 {
		return nil, ErrNoSample
	}
	if err := session.SubmitSample(sample); err != nil {
		return nil, err
	}

	classified, err := s.classification.Classify(ctx, session.Sample)
	if err != nil {
		return nil, err
	}

	c := classified.Classification
	log.Printf("Sample classified: group=%q markers=%q no_markers=%t", c.Group, c.Markers.String(), c.NoMarkers)

	report, document, err := s.reports.Issue(ctx, *session.Patient, c)
	if err != nil {
		return nil, err
	}
	if err := session.Complete(report); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	return &SampleOutput{
		Session:     session,
		Report:      report,
		Document:    document,
		Highlighted: classified.Highlighted,
	}, nil
}
