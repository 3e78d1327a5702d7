package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
)

// Issuer mints and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer. ttl bounds the lifetime of every
// issued token.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// claims carried by every access token.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue mints a signed token for the user. The subject is the user ID
// and the role travels as a private claim.
func (i *Issuer) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning the actor it encodes.
func (i *Issuer) Verify(tokenString string) (domain.Actor, error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return domain.Actor{}, ErrInvalidToken
	}

	role := domain.Role(c.Role)
	if !role.IsValid() {
		return domain.Actor{}, ErrInvalidToken
	}

	return domain.Actor{
		UserID: userID,
		Role:   role,
	}, nil
}
