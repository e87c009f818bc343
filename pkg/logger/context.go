package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey string

// Keys under which the request-scoped logger travels: loggerKey for a plain
// context.Context, EchoLoggerKey for echo's per-request store.
const (
	loggerKey     contextKey = "logger"
	EchoLoggerKey            = "logger"
)

// FromContext returns the request-scoped logger carried by ctx, or the
// global logger when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return GetLogger()
}

// WithContext attaches a request-scoped logger to ctx.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromEcho returns the logger the HTTP middleware stamped onto the request.
// It already carries the request id, and after authentication the acting
// profile's id and role.
func FromEcho(c echo.Context) *zap.Logger {
	if logger, ok := c.Get(EchoLoggerKey).(*zap.Logger); ok {
		return logger
	}
	return GetLogger()
}
