// Package ctxutil carries request-scoped values (request id, operator
// bearer token) through context.Context.
package ctxutil

import (
	"context"
	"strings"
)

type key[T any] struct{ name string }

func (k key[T]) with(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func (k key[T]) from(ctx context.Context) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

var (
	tokenKey     = key[string]{"bearer_token"}
	requestIDKey = key[string]{"request_id"}
)

// WithToken stores the operator bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return tokenKey.with(ctx, token)
}

// TokenFromCtx reports the stored bearer token; a blank one counts as absent.
func TokenFromCtx(ctx context.Context) (string, bool) {
	token, ok := tokenKey.from(ctx)
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return requestIDKey.with(ctx, id)
}

// RequestIDFromCtx returns the request id, or "" when none was stored.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := requestIDKey.from(ctx)
	return id
}
