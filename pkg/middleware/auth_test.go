package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/pkg/contextkeys"
	"gearguard/pkg/service"
)

func performRequest(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string, string) {
	t.Helper()

	e := echo.New()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	mw := NewAuthMiddleware(jwtSvc, zap.NewNop())

	var gotUserID, gotRole string
	handler := mw.Auth(func(c echo.Context) error {
		reqCtx := c.Request().Context()
		gotUserID, _ = reqCtx.Value(contextkeys.UserIDKey).(string)
		gotRole, _ = reqCtx.Value(contextkeys.UserRoleKey).(string)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec, gotUserID, gotRole
}

func TestAuthPassesSubjectToContext(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	token, err := jwtSvc.GenerateToken("user-1", "technician")
	require.NoError(t, err)

	rec, userID, role := performRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "technician", role)
}

func TestAuthMissingHeader(t *testing.T) {
	rec, _, _ := performRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	rec, _, _ := performRequest(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthForgedToken(t *testing.T) {
	otherIssuer := service.NewJWTService("another-secret", time.Hour)
	token, err := otherIssuer.GenerateToken("user-1", "manager")
	require.NoError(t, err)

	rec, _, _ := performRequest(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
