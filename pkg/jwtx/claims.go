package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of identity tokens. There is no refresh or
// revocation so this is also the longest a leaked token stays useful.
const DefaultTokenTTL = time.Hour

// Claims carry the caller identity and nothing else: sub, iat and exp.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds the claims for subject, valid from now until now+ttl.
func NewClaims(subject string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Expiry returns the absolute expiry, or the zero time if unset.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
