package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"creditrisk/business/scoring"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	e := echo.New()

	t.Run("generates an id when none supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen string
		handler := TraceMiddleware()(func(c echo.Context) error {
			seen = scoring.TraceIDFromContext(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
	})

	t.Run("honors inbound request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "upstream-42")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var seen string
		handler := TraceMiddleware()(func(c echo.Context) error {
			seen = scoring.TraceIDFromContext(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		assert.Equal(t, "upstream-42", seen)
		assert.Equal(t, "upstream-42", rec.Header().Get("X-Request-Id"))
	})
}
