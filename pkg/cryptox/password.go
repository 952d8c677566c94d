package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used when none is configured.
// 10 rounds keeps a login well under 100ms on commodity hardware.
const DefaultPasswordCost = 10

// MaxPasswordBytes is the longest input bcrypt will accept.
const MaxPasswordBytes = 72

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrInvalidCost      = errors.New("cryptox: bcrypt cost out of range")
)

// PasswordHasher salts and hashes passwords with bcrypt. Every hash carries
// its own random salt and cost, so verification never needs configuration.
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher returns a hasher with the given cost. Zero selects
// DefaultPasswordCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost == 0 {
		cost = DefaultPasswordCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{Cost: cost}, nil
}

// Hash returns the encoded bcrypt hash ($2a$<cost>$<salt+hash>) of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify recomputes the hash of password with the salt and cost stored in
// encodedHash and compares in constant time.
func (h *PasswordHasher) Verify(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: verify password: %w", err)
	}
}

// NeedsRehash reports whether encodedHash was produced with a different cost
// than the hasher is configured for.
func (h *PasswordHasher) NeedsRehash(encodedHash string) bool {
	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return true
	}
	return cost != h.Cost
}
