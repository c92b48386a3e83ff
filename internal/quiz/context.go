package quiz

import "context"

type contextKey string

const userKey contextKey = "quiz_user"

// WithUser scopes engine calls to roadmaps owned by userID. Roadmaps owned
// by someone else are reported as not found.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserFrom returns the user set by WithUser.
func UserFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userKey).(string)
	return v, ok && v != ""
}
