package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creditrisk/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performAuthed(t *testing.T, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/model/reload", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := AuthMiddleware()(AdminOnly()(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}))
	require.NoError(t, handler(c))

	return rec, reached
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetSecret("test-secret")

	t.Run("admin token passes", func(t *testing.T) {
		token, err := utils.GenerateJWT("ops-1", "ADMIN", time.Hour)
		require.NoError(t, err)

		rec, reached := performAuthed(t, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		token, err := utils.GenerateJWT("user-1", "ANALYST", time.Hour)
		require.NoError(t, err)

		rec, reached := performAuthed(t, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		rec, reached := performAuthed(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		rec, reached := performAuthed(t, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := utils.GenerateJWT("ops-1", "ADMIN", -time.Minute)
		require.NoError(t, err)

		rec, reached := performAuthed(t, token)
		assert.NotEqual(t, http.StatusOK, rec.Code)
		assert.False(t, reached)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		utils.SetSecret("other-secret")
		token, err := utils.GenerateJWT("ops-1", "ADMIN", time.Hour)
		require.NoError(t, err)

		utils.SetSecret("test-secret")
		rec, reached := performAuthed(t, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})
}
