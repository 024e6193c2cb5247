package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/pkg/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records its latency. It logs the procedure name, session ID, duration,
// and any error codes/messages. m may be nil.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			sessionID := GetSessionID(ctx) // empty outside cart RPCs

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			duration := elapsed.Milliseconds()
			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"session_id", sessionID,
						"duration_ms", duration,
					)
				} else {
					code = connect.CodeUnknown.String()
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"session_id", sessionID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"session_id", sessionID,
					"duration_ms", duration,
				)
			}
			m.ObserveRPC(procedure, code, elapsed)

			return resp, err
		}
	}
}
