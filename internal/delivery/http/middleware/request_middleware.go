package middleware

import (
	"log/slog"

	deliverycontext "vidtube/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestMiddleware tags every request with an id and a request-scoped logger.
type RequestMiddleware struct {
	logger *slog.Logger
}

// NewRequestMiddleware creates the request tagging middleware.
func NewRequestMiddleware(logger *slog.Logger) *RequestMiddleware {
	return &RequestMiddleware{logger: logger}
}

// Handle propagates the client's X-Request-Id (or mints one), echoes it on
// the response, and stashes a logger carrying it into the request context so
// downstream layers log with the same id.
func (m *RequestMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		requestLogger := m.logger.With(slog.String("requestID", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, requestLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
