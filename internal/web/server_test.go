package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer() *Server {
	cfg := &Config{Port: 0, SubmitRPS: 100, SubmitBurst: 100}
	return NewServer(cfg, &Handlers{}, nil)
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServerUnknownRoute(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerCORSPreflight(t *testing.T) {
	cfg := &Config{Port: 0, AllowedOrigin: "https://goia.app", SubmitRPS: 100, SubmitBurst: 100}
	srv := NewServer(cfg, &Handlers{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "https://goia.app")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "https://goia.app", rec.Header().Get("Access-Control-Allow-Origin"))
}
