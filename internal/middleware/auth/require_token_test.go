package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mkuznetsov/product_catalog/internal/tokens"
)

var testSecret = []byte("test_secret")

func runGate(t *testing.T, authHeader string) (bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	err := RequireToken(testSecret)(next)(c)
	return called, err
}

func signWithExpiry(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      "1",
		"username": "alice",
		"exp":      exp.Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return raw
}

func TestMissingToken(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer "} {
		called, err := runGate(t, header)
		require.False(t, called, "handler must not run for header %q", header)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError")
		require.Equal(t, http.StatusUnauthorized, he.Code)
		require.Equal(t, "no token provided", he.Message)
	}
}

func TestInvalidToken(t *testing.T) {
	called, err := runGate(t, "Bearer not-a-token")
	require.False(t, called)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "invalid token", he.Message)
}

func TestWrongSecret(t *testing.T) {
	raw, err := tokens.Sign(1, "alice", []byte("other_secret"))
	require.NoError(t, err)

	called, gateErr := runGate(t, "Bearer "+raw)
	require.False(t, called)
	he, ok := gateErr.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestValidTokenAttachesIdentity(t *testing.T) {
	raw, err := tokens.Sign(7, "alice", testSecret)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		name, ok := Username(c)
		require.True(t, ok)
		require.Equal(t, "alice", name)
		require.Equal(t, uint(7), c.Get("userID"))
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, RequireToken(testSecret)(next)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExpiryWindow(t *testing.T) {
	// Still inside the 1h lifetime.
	fresh := signWithExpiry(t, time.Now().Add(59*time.Minute))
	called, err := runGate(t, "Bearer "+fresh)
	require.NoError(t, err)
	require.True(t, called)

	// Past it.
	stale := signWithExpiry(t, time.Now().Add(-time.Minute))
	called, err = runGate(t, "Bearer "+stale)
	require.False(t, called)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "invalid token", he.Message)
}
