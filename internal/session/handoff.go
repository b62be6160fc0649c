package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nfrund/issuedesk/internal/domain"
)

// MaxHandoffLifetime bounds how long a hand-off token may be valid for.
const MaxHandoffLifetime = 10 * time.Minute

// ErrHandoffToken is returned for missing, forged, expired or over-long tokens.
var ErrHandoffToken = errors.New("invalid hand-off token")

// HandoffClaims is the identity the login flow signs when it hands a browser
// over to this service.
type HandoffClaims struct {
	domain.IdentityRecord
	jwt.RegisteredClaims
}

// SignHandoff issues an HS256 hand-off token for rec valid for ttl.
func SignHandoff(secret string, rec domain.IdentityRecord, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := HandoffClaims{
		IdentityRecord: rec,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   rec.Roll,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseHandoff verifies a hand-off token and returns its identity claims.
// Only HS256 is accepted; exp and iat are required.
func ParseHandoff(secret, tokenString string) (*HandoffClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: missing", ErrHandoffToken)
	}

	token, err := jwt.ParseWithClaims(tokenString, &HandoffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandoffToken, err)
	}
	claims, ok := token.Claims.(*HandoffClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: %w", ErrHandoffToken, jwt.ErrTokenInvalidClaims)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt.Sub(claims.IssuedAt.Time) > MaxHandoffLifetime {
		return nil, fmt.Errorf("%w: lifetime exceeds %s", ErrHandoffToken, MaxHandoffLifetime)
	}
	return claims, nil
}
