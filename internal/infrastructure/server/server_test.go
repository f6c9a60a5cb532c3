package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/config"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	home, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.RateLimit.Enabled = false
	cfg.Filesystem.Home = home
	cfg.Filesystem.ReadOnlyRoots = []string{}

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv, home
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "0"

	_, err := NewServer(cfg)
	assert.Error(t, err)
}

func TestServerRoutes(t *testing.T) {
	srv, home := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/fs/home", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), home)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv, home := newTestServer(t)

	serve(srv, httptest.NewRequest(http.MethodGet, "/fs/list?path="+url.QueryEscape(home), nil))

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `finder_filesystem_operations_total{op="list",status="success"} 1`)
	assert.Contains(t, body, "finder_http_requests_total")
}

func TestServerCompressesLargeResponses(t *testing.T) {
	srv, home := newTestServer(t)
	for i := 0; i < 50; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(home, fmt.Sprintf("document-%02d.txt", i)), nil, 0o644))
	}

	req := httptest.NewRequest(http.MethodGet, "/fs/list?path="+url.QueryEscape(home), nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := serve(srv, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	plain := serve(srv, httptest.NewRequest(http.MethodGet, "/fs/list?path="+url.QueryEscape(home), nil))
	assert.Empty(t, plain.Header().Get("Content-Encoding"))
	assert.True(t, strings.HasPrefix(plain.Body.String(), "{"))
}

func TestServerCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	w := serve(srv, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:1420", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(srv, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServerRateLimit(t *testing.T) {
	home := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Filesystem.Home = home
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1

	srv, err := NewServer(cfg)
	require.NoError(t, err)

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		return serve(srv, req).Code
	}
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestServerDegradedHome(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.RateLimit.Enabled = false
	cfg.Filesystem.Home = filepath.Join(t.TempDir(), "missing")

	srv, err := NewServer(cfg)
	require.NoError(t, err)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/fs/home", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "configuration_error")
}

func TestShutdownWithoutRun(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
