package service

import (
	"time"

	"github.com/aussiebroadwan/tasks/pkg/jwtx"
)

// TokenService issues and checks identity tokens. It satisfies
// httpx.TokenVerifier so the access guard can use it directly.
type TokenService struct {
	Signer *jwtx.HS256
	TTL    time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewTokenService builds a token service over secret with the default TTL.
func NewTokenService(secret []byte) (*TokenService, error) {
	signer, err := jwtx.NewHS256(secret)
	if err != nil {
		return nil, err
	}
	s := &TokenService{Signer: signer, TTL: jwtx.DefaultTokenTTL, Now: time.Now}
	// Expiry checks follow the service clock.
	signer.Now = s.now
	return s, nil
}

// Issue signs a token for userID and reports when it stops being valid.
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewClaims(userID, ttl, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.Expiry(), nil
}

// Verify returns the user id a token was issued for. Errors wrap one of the
// jwtx sentinels.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := s.Signer.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
