package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, l *Limiter, remoteAddr string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return l.Middleware()(next)(c)
}

func TestLimitWithinWindow(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, doRequest(t, l, "10.0.0.1:1234"))
	}

	err := doRequest(t, l, "10.0.0.1:1234")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusTooManyRequests, he.Code)
	require.Equal(t, rejectionMessage, he.Message)
}

func TestLimitIsPerIP(t *testing.T) {
	l := New(1, time.Minute)

	require.NoError(t, doRequest(t, l, "10.0.0.1:1234"))
	require.NoError(t, doRequest(t, l, "10.0.0.2:1234"))

	err := doRequest(t, l, "10.0.0.1:5678")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusTooManyRequests, he.Code)
}

func TestWindowResets(t *testing.T) {
	l := New(1, 50*time.Millisecond)

	require.NoError(t, doRequest(t, l, "10.0.0.1:1234"))
	require.Error(t, doRequest(t, l, "10.0.0.1:1234"))

	time.Sleep(60 * time.Millisecond)
	require.NoError(t, doRequest(t, l, "10.0.0.1:1234"))
}
