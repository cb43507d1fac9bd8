package ports

import (
	"context"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and checks the two token classes of the auth service.
// Access and refresh tokens are never accepted in place of each other.
type TokenIssuer interface {
	IssueAccess(subjectID, email string) (string, error)
	IssueRefresh(subjectID, email string) (string, error)
	VerifyAccess(token string) (domain.TokenClaims, error)
	VerifyRefresh(token string) (domain.TokenClaims, error)
}

// BearerVerifier extracts the caller identity from a token issued elsewhere.
type BearerVerifier interface {
	Verify(token string) (userID string, err error)
}

type AuthResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
}
