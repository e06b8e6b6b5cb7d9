package middleware

import (
	"context"

	"creditrisk/business/scoring"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-Id"

// TraceMiddleware assigns each request a trace id (honoring an inbound
// X-Request-Id) and threads it through the request context so engine logs and
// audit rows can be correlated.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(requestIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), scoring.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(requestIDHeader, traceID)

			return next(c)
		}
	}
}
