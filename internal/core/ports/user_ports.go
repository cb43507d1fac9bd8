package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/assessment/internal/core/domain"
)

// UserRepository returns (nil, nil) when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
