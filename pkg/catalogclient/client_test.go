package catalogclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "pw1" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok123"})
	})

	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		// Reads are public; the client must not send a token here.
		require.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Product{{ID: 1, Name: "Widget", Price: 9.99}})
	})

	mux.HandleFunc("POST /api/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "no token provided"})
			return
		}
		var input ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Product{ID: 2, Name: input.Name, Price: input.Price})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginStoresToken(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	require.False(t, c.IsAuthenticated())
	require.NoError(t, c.Login(context.Background(), "alice", "pw1"))
	require.True(t, c.IsAuthenticated())

	c.Logout()
	require.False(t, c.IsAuthenticated())
}

func TestLoginFailureLeavesClientUnauthenticated(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid credentials")
	require.False(t, c.IsAuthenticated())
}

func TestMutationsCarryToken(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	// Unauthenticated create is rejected by the server.
	_, err := c.CreateProduct(context.Background(), ProductInput{Name: "Widget", Price: 9.99})
	require.Error(t, err)

	require.NoError(t, c.Login(context.Background(), "alice", "pw1"))

	created, err := c.CreateProduct(context.Background(), ProductInput{Name: "Widget", Price: 9.99})
	require.NoError(t, err)
	require.Equal(t, uint(2), created.ID)
	require.Equal(t, "Widget", created.Name)
}

func TestProductsIsPublic(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Widget", products[0].Name)
}
