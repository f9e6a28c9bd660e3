package middleware

import (
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxRequestIDLength bounds client-supplied request IDs before they reach logs and events.
const maxRequestIDLength = 128

// RequestIDMiddleware assigns every API request an ID and a logger bound to it.
// The ID ends up on published marketplace events, so the worker logs share it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := acceptRequestID(c.Request().Header.Get(deliverycontext.HeaderXRequestID))

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx := deliverycontext.WithRequestScope(
			c.Request().Context(),
			requestID,
			m.logger.With(slog.String("request_id", requestID)),
		)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func acceptRequestID(incoming string) string {
	if incoming == "" || len(incoming) > maxRequestIDLength {
		return uuid.New().String()
	}

	return incoming
}
