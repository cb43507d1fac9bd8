package token

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vncsmyrnk/assessment/internal/core/domain"
	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

var ErrNoVerificationKey = errors.New("a JWT public key or shared secret is required")

// BearerVerifier checks tokens minted by another service. It accepts RS256
// and HS256 and resolves the key by the token's algorithm family; a family
// without configured key material never verifies.
type BearerVerifier struct {
	publicKey *rsa.PublicKey
	secret    []byte
}

// NewBearerVerifier prefers publicKeyPEM; secret is used only when no public
// key is configured.
func NewBearerVerifier(publicKeyPEM, secret string) (ports.BearerVerifier, error) {
	if publicKeyPEM != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse JWT public key: %w", err)
		}
		return &BearerVerifier{publicKey: key}, nil
	}
	if secret != "" {
		return &BearerVerifier{secret: []byte(secret)}, nil
	}
	return nil, ErrNoVerificationKey
}

func (v *BearerVerifier) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	return identity(claims)
}

func (v *BearerVerifier) keyFunc(t *jwt.Token) (interface{}, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodRSA:
		if v.publicKey != nil {
			return v.publicKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if v.secret != nil {
			return v.secret, nil
		}
	}
	return nil, fmt.Errorf("no key configured for %s", t.Method.Alg())
}

// identity prefers a string user_id claim over the subject.
func identity(claims jwt.MapClaims) (string, error) {
	if raw, ok := claims["user_id"]; ok {
		if userID, ok := raw.(string); ok {
			if userID == "" {
				return "", domain.ErrMissingIdentity
			}
			return userID, nil
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrMissingIdentity
	}
	return sub, nil
}
