// Package token issues and verifies the JWTs exchanged between clients and
// the auth and assessment services.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var ErrEmptySecret = errors.New("token signing secrets must not be empty")

// Claims is the payload of both token classes. Type separates the two
// signing domains even when an operator configures identical secrets.
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type Option func(*Issuer)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer builds the token component of the auth service. Non-positive
// TTLs fall back to the defaults.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...Option) (ports.TokenIssuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrEmptySecret
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}

	i := &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

func (i *Issuer) IssueAccess(subjectID, email string) (string, error) {
	return i.issue(subjectID, email, typeAccess, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(subjectID, email string) (string, error) {
	return i.issue(subjectID, email, typeRefresh, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) VerifyAccess(token string) (domain.TokenClaims, error) {
	return i.verify(token, typeAccess, i.accessSecret)
}

func (i *Issuer) VerifyRefresh(token string) (domain.TokenClaims, error) {
	return i.verify(token, typeRefresh, i.refreshSecret)
}

func (i *Issuer) issue(subjectID, email, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		Email: email,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify collapses every failure (signature, structure, expiry, class)
// into domain.ErrInvalidToken.
func (i *Issuer) verify(tokenString, tokenType string, secret []byte) (domain.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}
	if claims.Type != tokenType || claims.Subject == "" {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	return domain.TokenClaims{SubjectID: claims.Subject, Email: claims.Email}, nil
}
