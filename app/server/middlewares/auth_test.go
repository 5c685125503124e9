package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-directory/app/server/auth"
	"user-directory/app/server/constants"
)

func TestAuth_PassesIdentityToHandler(t *testing.T) {
	t.Parallel()

	identityServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "isAdmin": true})
	}))
	defer identityServer.Close()

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		identity, ok := c.Get(constants.ContextKeyIdentity).(*auth.Identity)
		require.True(t, ok)
		assert.Equal(t, uint(5), identity.ID)
		assert.True(t, identity.IsAdmin)
		return c.NoContent(http.StatusOK)
	}, Auth(auth.NewValidator(identityServer.URL), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RejectsWithoutReachingHandler(t *testing.T) {
	t.Parallel()

	identityServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer identityServer.Close()

	e := echo.New()
	called := false
	e.GET("/whoami", func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}, Auth(auth.NewValidator(identityServer.URL), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "401")
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	identityServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("authentication service should not be called")
	}))
	defer identityServer.Close()

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Auth(auth.NewValidator(identityServer.URL), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_UnsetAPIURLFailsClosed(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Auth(auth.NewValidator(""), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
