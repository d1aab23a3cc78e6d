// Package context carries per-request values (request id, scoped logger)
// across the delivery and usecase layers.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey keeps this package's context keys distinct from other packages'.
type ContextKey string

const (
	// KeyRequestID stores the request id.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger stores the request-scoped logger.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID is the header the request id is read from and echoed on.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the request id stored on the echo context, or ""
// when the request middleware has not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok {
		return id
	}

	return ""
}

// SetRequestID stores the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestID returns a context carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns the request-scoped logger, or nil when none was stored.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to the
// given logger. Usecases call this so their log lines carry the request id
// without the logger being threaded through every signature.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a context carrying the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
