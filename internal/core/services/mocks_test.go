package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

type mockAssessmentRepository struct {
	mock.Mock
}

func (m *mockAssessmentRepository) ListActive(ctx context.Context) ([]*domain.Assessment, error) {
	args := m.Called(ctx)
	assessments, _ := args.Get(0).([]*domain.Assessment)
	return assessments, args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepository) Complete(ctx context.Context, id uuid.UUID, userID string) (*domain.Session, error) {
	args := m.Called(ctx, id, userID)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

type mockAnswerRepository struct {
	mock.Mock
}

func (m *mockAnswerRepository) Create(ctx context.Context, answer *domain.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}
