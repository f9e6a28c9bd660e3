// Package context carries request-scoped values (request ID, logger and the
// verified caller) between echo handlers, the worker and the usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is echoed back on every API response.
const HeaderXRequestID = "X-Request-Id"

// scopeKey is a typed context key; the echo store uses its name.
type scopeKey[T any] struct {
	name string
}

var (
	requestIDKey = scopeKey[string]{name: "request_id"}
	loggerKey    = scopeKey[*slog.Logger]{name: "logger"}
)

func (k scopeKey[T]) from(ctx context.Context) (T, bool) {
	v, ok := ctx.Value(k).(T)

	return v, ok
}

func (k scopeKey[T]) with(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func (k scopeKey[T]) fromEcho(c echo.Context) (T, bool) {
	v, ok := c.Get(k.name).(T)

	return v, ok
}

// WithRequestScope attaches a request ID and the logger bound to it.
func WithRequestScope(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	return WithLogger(WithRequestID(ctx, requestID), logger)
}

// GetRequestID returns the request ID stored on c, or a fresh one when the
// request never passed through the request ID middleware.
func GetRequestID(c echo.Context) string {
	if id, ok := requestIDKey.fromEcho(c); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(requestIDKey.name, requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := requestIDKey.from(ctx)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return requestIDKey.with(ctx, requestID)
}

func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := loggerKey.from(ctx)

	return logger
}

func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return loggerKey.with(ctx, logger)
}
