package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*ports.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*ports.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockAssessmentService struct {
	mock.Mock
}

func (m *mockAssessmentService) ListActive(ctx context.Context) ([]*domain.Assessment, error) {
	args := m.Called(ctx)
	assessments, _ := args.Get(0).([]*domain.Assessment)
	return assessments, args.Error(1)
}

func (m *mockAssessmentService) Start(ctx context.Context, input ports.StartSessionInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *mockAssessmentService) SubmitAnswer(ctx context.Context, input ports.SubmitAnswerInput) (*domain.Answer, error) {
	args := m.Called(ctx, input)
	answer, _ := args.Get(0).(*domain.Answer)
	return answer, args.Error(1)
}

func (m *mockAssessmentService) Complete(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, userID)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

type stubVerifier struct {
	userID string
	err    error
	seen   []string
}

func (v *stubVerifier) Verify(token string) (string, error) {
	v.seen = append(v.seen, token)
	return v.userID, v.err
}
