package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type assessmentService struct {
	assessmentRepo ports.AssessmentRepository
	sessionRepo    ports.SessionRepository
	answerRepo     ports.AnswerRepository
}

func NewAssessmentService(assessmentRepo ports.AssessmentRepository, sessionRepo ports.SessionRepository, answerRepo ports.AnswerRepository) ports.AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		sessionRepo:    sessionRepo,
		answerRepo:     answerRepo,
	}
}

func (s *assessmentService) ListActive(ctx context.Context) ([]*domain.Assessment, error) {
	assessments, err := s.assessmentRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

func (s *assessmentService) Start(ctx context.Context, input ports.StartSessionInput) (*domain.Session, error) {
	if input.AssessmentID == "" {
		return nil, domain.ErrMissingAssessmentID
	}

	session := &domain.Session{
		AssessmentID: input.AssessmentID,
		UserID:       input.UserID,
		Metadata:     metadataOrEmpty(input.Metadata),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

// SubmitAnswer reads the session first so that a missing session (404), a
// foreign session (403) and a completed one (409) stay distinguishable.
func (s *assessmentService) SubmitAnswer(ctx context.Context, input ports.SubmitAnswerInput) (*domain.Answer, error) {
	if input.SessionID == "" || input.AnswerOrder == nil || len(input.Answer) == 0 {
		return nil, domain.ErrMissingAnswerFields
	}

	sessionID, err := uuid.Parse(input.SessionID)
	if err != nil {
		return nil, domain.ErrInvalidSessionID
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.UserID != input.UserID {
		return nil, domain.ErrSessionForbidden
	}
	if session.IsCompleted() {
		return nil, domain.ErrSessionCompleted
	}

	answer := &domain.Answer{
		SessionID:   sessionID,
		QuestionID:  input.QuestionID,
		AnswerOrder: *input.AnswerOrder,
		Payload:     input.Answer,
		Metadata:    metadataOrEmpty(input.Metadata),
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}
	return answer, nil
}

// Complete relies on the conditional update alone, so a session that does not
// exist, belongs to someone else or is already completed is a plain 404.
func (s *assessmentService) Complete(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, domain.ErrInvalidSessionID
	}

	session, err := s.sessionRepo.Complete(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// metadataOrEmpty stores omitted or null metadata as an empty object.
func metadataOrEmpty(m json.RawMessage) json.RawMessage {
	if len(m) == 0 || string(m) == "null" {
		return domain.EmptyMetadata
	}
	return m
}
