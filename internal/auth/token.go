// Package auth issues and verifies the signed identity tokens handed to
// clients after registration or login.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "moneyhub/internal/errors"
)

const (
	// DefaultTokenTTL is the lifetime of an issued token.
	DefaultTokenTTL = 7 * 24 * time.Hour

	issuer = "moneyhub-api"
)

// Claims represents the claims in the JWT
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a process-wide secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock replaces the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(i *TokenIssuer) { i.now = now }
}

// NewTokenIssuer creates a TokenIssuer. A non-positive ttl selects DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration, opts ...Option) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	i := &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue creates a signed token for the given user id and returns it with its expiry.
func (i *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token and returns the user id it was issued for.
// Any failure (bad signature, wrong algorithm, malformed, expired) is reported
// as ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithTimeFunc(i.now),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}

	if claims.UserID == "" || claims.UserID != claims.Subject {
		return "", apperrors.ErrInvalidToken
	}

	return claims.UserID, nil
}
