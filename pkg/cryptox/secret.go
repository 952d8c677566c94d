package cryptox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MinSecretBytes is the shortest HMAC signing secret we accept. HS256 wants
// at least as many key bytes as the hash output.
const MinSecretBytes = 32

var ErrSecretTooShort = fmt.Errorf("cryptox: signing secret must be at least %d bytes", MinSecretBytes)

// LoadOrGenerateSecret reads the signing secret stored at path. If the file
// does not exist a fresh 256-bit secret is generated and written with 0600
// permissions, so a dev instance keeps its tokens valid across restarts.
func LoadOrGenerateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := []byte(strings.TrimSpace(string(raw)))
		if len(secret) < MinSecretBytes {
			return nil, fmt.Errorf("%w: %s", ErrSecretTooShort, path)
		}
		return secret, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("cryptox: read secret: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("cryptox: create secret dir: %w", err)
	}

	secret, err := GenerateToken(TokenSize256)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, []byte(secret), 0600); err != nil {
		return nil, fmt.Errorf("cryptox: write secret: %w", err)
	}

	return []byte(secret), nil
}

// ValidateSecret checks a secret supplied directly through configuration.
func ValidateSecret(secret []byte) error {
	if len(secret) < MinSecretBytes {
		return ErrSecretTooShort
	}
	return nil
}
