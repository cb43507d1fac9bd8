package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issuePair(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Tokens: tokens}, nil
}

// Login answers an unknown email and a wrong password with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.issuePair(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// not revoked and stays valid until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, domain.ErrMissingRefreshToken
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, domain.ErrInvalidToken
	}

	return s.issuePair(claims.SubjectID, claims.Email)
}

func (s *AuthService) issuePair(subjectID, email string) (domain.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccess(subjectID, email)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefresh(subjectID, email)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
