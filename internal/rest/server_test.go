// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-passkey.
//
// go-passkey is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-passkey/pkg/passkey"
)

func newTestService(t *testing.T) *passkey.Service {
	t.Helper()
	svc, err := passkey.NewService(passkey.ServiceParams{
		UserStore:       passkey.NewMemoryUserStore(),
		CredentialStore: passkey.NewMemoryCredentialStore(),
	})
	require.NoError(t, err)
	return svc
}

func TestNewServer_RequiresService(t *testing.T) {
	_, err := NewServer(&Config{})
	require.Error(t, err)

	_, err = NewServer(nil)
	require.Error(t, err)
}

func TestNewServer_Defaults(t *testing.T) {
	srv, err := NewServer(&Config{Service: newTestService(t)})
	require.NoError(t, err)
	assert.Equal(t, ":3001", srv.Addr())
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)

	req := httptest.NewRequest(http.MethodHead, "/health", nil)
	head := httptest.NewRecorder()
	srv.Router().ServeHTTP(head, req)
	assert.Equal(t, http.StatusOK, head.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, err := NewServer(&Config{
		Service:        newTestService(t),
		MetricsEnabled: true,
	})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "passkey_")
}

func TestCORSMiddleware(t *testing.T) {
	srv, err := NewServer(&Config{
		Service:       newTestService(t),
		AllowedOrigin: "http://localhost:5173",
	})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/api/users", "")
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req := httptest.NewRequest(http.MethodOptions, "/api/users/register", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight := httptest.NewRecorder()
	srv.Router().ServeHTTP(preflight, req)
	assert.Equal(t, http.StatusOK, preflight.Code)
	assert.Contains(t, preflight.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
