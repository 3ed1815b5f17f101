// Package token implements the capability token scheme: a self-contained,
// signed, expiring credential carrying one order number. Tokens are never
// stored; validity is a function of the token bytes, the shared secret and
// the clock, so a token cannot be revoked early.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the default tracking-link lifetime.
const DefaultTTL = 90 * 24 * time.Hour

// ErrInvalidToken is returned for every validation failure. Signature
// mismatch, malformed encoding and expiry are deliberately indistinguishable
// to the caller so the response never leaks which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Issue creates a signed token whose subject is the given order number,
// expiring after ttl.
func Issue(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate checks the token's signature and expiry and returns its subject.
// Any failure, whatever the cause, returns ErrInvalidToken.
func Validate(secret, tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
