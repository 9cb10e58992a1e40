package middleware

import "context"

type contextKey string

const (
	// ContextKeyUsername carries the authenticated tenant's username.
	ContextKeyUsername contextKey = "username"
)

func UsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUsername).(string)
	return v, ok
}
