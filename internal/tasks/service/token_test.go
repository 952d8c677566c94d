package service

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	ts, err := NewTokenService([]byte(secret))
	require.NoError(t, err)
	return ts
}

func TestTokenIssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ts := newTokenService(t, strings.Repeat("k", 32))
	ts.Now = func() time.Time { return now }

	token, exp, err := ts.Issue("user-1")
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour), exp)

	sub, err := ts.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", sub)

	t.Run("expires after an hour", func(t *testing.T) {
		ts.Now = func() time.Time { return now.Add(time.Hour + time.Second) }
		_, err := ts.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("other secret", func(t *testing.T) {
		other := newTokenService(t, strings.Repeat("z", 32))
		other.Now = func() time.Time { return now }
		_, err := other.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ts.Verify("not-a-token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}
