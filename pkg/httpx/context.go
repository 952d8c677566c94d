package httpx

import "context"

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// ContextWithUserID stores the authenticated caller id. Only the access guard
// and tests should need this.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// UserIDFromContext returns the caller id resolved by AccessGuard.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUserID).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
