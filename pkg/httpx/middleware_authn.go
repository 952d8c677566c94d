package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// ErrMissingToken is logged when a request has no usable bearer credential.
var ErrMissingToken = errors.New("httpx: missing bearer token")

// TokenVerifier resolves a raw bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// NotAuthorizedMessage is the only thing a caller learns when the guard says no.
const NotAuthorizedMessage = "Not authorized"

// AccessGuard rejects requests without a valid bearer token and attaches the
// caller id to the request context otherwise. The user is not looked up again;
// a token is trusted for as long as it is valid.
func AccessGuard(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				log.Warn("access denied", "reason", ErrMissingToken)
				writeNotAuthorized(w)
				return
			}

			userID, err := v.Verify(raw)
			if err != nil {
				log.Warn("access denied", "reason", err)
				writeNotAuthorized(w)
				return
			}

			ctx = ContextWithUserID(ctx, userID)
			ctx = slogx.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively per RFC 6750.
func BearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// Every failure looks the same from the outside, the reason stays in our logs.
func writeNotAuthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{
		Error:   "not_authorized",
		Message: NotAuthorizedMessage,
	})
}
