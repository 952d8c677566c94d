package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jwt.secret")

	first, err := LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(first), MinSecretBytes)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Second load must return the same secret or every restart logs everyone out.
	second, err := LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrGenerateSecret_TrimsAndValidates(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good")
	want := strings.Repeat("k", MinSecretBytes)
	require.NoError(t, os.WriteFile(good, []byte(want+"\n"), 0600))

	secret, err := LoadOrGenerateSecret(good)
	require.NoError(t, err)
	require.Equal(t, want, string(secret))

	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte("tiny"), 0600))

	_, err = LoadOrGenerateSecret(short)
	require.ErrorIs(t, err, ErrSecretTooShort)
}

func TestValidateSecret(t *testing.T) {
	require.ErrorIs(t, ValidateSecret([]byte("short")), ErrSecretTooShort)
	require.NoError(t, ValidateSecret([]byte(strings.Repeat("x", MinSecretBytes))))
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.Len(t, token, 43)

	other, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, token, other, "tokens should be unique")

	_, err = GenerateToken(0)
	require.Error(t, err)
}
