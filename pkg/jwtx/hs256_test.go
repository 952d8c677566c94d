package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newHS256(t *testing.T, secret []byte) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256(secret)
	require.NoError(t, err)
	return h
}

func TestNewHS256RejectsEmptySecret(t *testing.T) {
	_, err := jwtx.NewHS256(nil)
	require.ErrorIs(t, err, jwtx.ErrEmptySecret)
}

func TestSignAndVerify(t *testing.T) {
	h := newHS256(t, testSecret)
	now := time.Now()

	token, err := h.Sign(jwtx.NewClaims("user-1", jwtx.DefaultTokenTTL, now))
	require.NoError(t, err)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.WithinDuration(t, now.Add(time.Hour), claims.Expiry(), time.Second)
}

func TestTokenCarriesOnlySubjectAndTimes(t *testing.T) {
	h := newHS256(t, testSecret)

	token, err := h.Sign(jwtx.NewClaims("user-1", time.Hour, time.Now()))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))
	require.Len(t, fields, 3)
	require.Contains(t, fields, "sub")
	require.Contains(t, fields, "iat")
	require.Contains(t, fields, "exp")
	require.InDelta(t, 3600, fields["exp"].(float64)-fields["iat"].(float64), 0)
}

func TestVerifyExpired(t *testing.T) {
	h := newHS256(t, testSecret)
	issued := time.Now().Add(-2 * time.Hour)

	token, err := h.Sign(jwtx.NewClaims("user-1", time.Hour, issued))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyUsesInjectedClock(t *testing.T) {
	h := newHS256(t, testSecret)
	issued := time.Now()

	token, err := h.Sign(jwtx.NewClaims("user-1", time.Hour, issued))
	require.NoError(t, err)

	h.Now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = h.Verify(token)
	require.NoError(t, err)

	h.Now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyBadSignature(t *testing.T) {
	signer := newHS256(t, testSecret)
	other := newHS256(t, []byte("ffffffffffffffffffffffffffffffff"))

	token, err := signer.Sign(jwtx.NewClaims("user-1", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		forged, err := other.Sign(jwtx.NewClaims("user-2", time.Hour, time.Now()))
		require.NoError(t, err)
		parts[1] = strings.Split(forged, ".")[1]

		_, err = signer.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired and badly signed reports signature", func(t *testing.T) {
		old, err := other.Sign(jwtx.NewClaims("user-1", time.Hour, time.Now().Add(-3*time.Hour)))
		require.NoError(t, err)

		_, err = signer.Verify(old)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	h := newHS256(t, testSecret)
	claims := jwtx.NewClaims("user-1", time.Hour, time.Now())

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = h.Verify(hs512)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = h.Verify(none)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyMalformed(t *testing.T) {
	h := newHS256(t, testSecret)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c", "invalid-token-12345"} {
		_, err := h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "token %q", raw)
	}
}

func TestVerifyRequiresExpiryAndSubject(t *testing.T) {
	h := newHS256(t, testSecret)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).SignedString(testSecret)
	require.NoError(t, err)
	_, err = h.Verify(noExp)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)

	noSub, err := h.Sign(jwtx.NewClaims("", time.Hour, time.Now()))
	require.NoError(t, err)
	_, err = h.Verify(noSub)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}
