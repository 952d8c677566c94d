package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies tokens with a single shared secret held by this
// process. It implements both Signer and Verifier.
type HS256 struct {
	secret []byte

	// Now is the clock used for expiry checks. Defaults to time.Now.
	Now func() time.Time
}

// NewHS256 copies secret so later mutation by the caller can't change keys
// underneath in-flight requests.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256{secret: key, Now: time.Now}, nil
}

// Sign takes your claims and turns them into a signed JWT string.
func (h *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

// Verify parses tokenStr and checks, in this order, that it decodes, that the
// signature matches, and that it has not expired. The returned error wraps
// exactly one of ErrMalformed, ErrInvalidSig, ErrExpired or ErrInvalidClaim.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}

func (h *HS256) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// classify maps golang-jwt's error tree onto our own sentinels so callers
// never import jwt directly.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}
