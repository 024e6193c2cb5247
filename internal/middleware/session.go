package middleware

import (
	"context"

	"connectrpc.com/connect"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionIDKey is the context key for the cart session of the current RPC.
const SessionIDKey contextKey = "session_id"

// GetSessionID extracts the cart session ID from the context.
// Returns empty string if the RPC is not tied to a session.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

type sessionScoped interface {
	GetSessionID() string
}

// SessionInterceptor copies the session ID of cart RPCs into the context so
// later interceptors and handlers can log it.
func SessionInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if msg, ok := req.Any().(sessionScoped); ok && msg.GetSessionID() != "" {
				ctx = context.WithValue(ctx, SessionIDKey, msg.GetSessionID())
			}
			return next(ctx, req)
		}
	}
}
