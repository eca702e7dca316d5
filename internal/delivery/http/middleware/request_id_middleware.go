package middleware

import (
	"log/slog"

	deliverycontext "nearbasket/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID propagates the client's X-Request-Id header, generating one when
// absent, and hangs a request-scoped logger on the context.
func RequestID(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			deliverycontext.SetRequestID(c, requestID)
			c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

			ctx := c.Request().Context()
			ctx = deliverycontext.WithRequestID(ctx, requestID)
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("request_id", requestID)))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
