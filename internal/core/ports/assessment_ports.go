package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/assessment/internal/core/domain"
)

type AssessmentRepository interface {
	ListActive(ctx context.Context) ([]*domain.Assessment, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// GetByID returns (nil, nil) when the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	// Complete marks an active session owned by userID as completed.
	// It returns (nil, nil) when no row matched.
	Complete(ctx context.Context, id uuid.UUID, userID string) (*domain.Session, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, answer *domain.Answer) error
}

type StartSessionInput struct {
	AssessmentID string
	UserID       string
	Metadata     json.RawMessage
}

type SubmitAnswerInput struct {
	SessionID   string
	UserID      string
	QuestionID  *string
	AnswerOrder *int
	Answer      json.RawMessage
	Metadata    json.RawMessage
}

type AssessmentService interface {
	ListActive(ctx context.Context) ([]*domain.Assessment, error)
	Start(ctx context.Context, input StartSessionInput) (*domain.Session, error)
	SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*domain.Answer, error)
	Complete(ctx context.Context, sessionID, userID string) (*domain.Session, error)
}
