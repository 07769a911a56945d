package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/codr1/themevars/internal/config"
	"github.com/codr1/themevars/internal/ratelimit"
)

func TestServerRoutes(t *testing.T) {
	server := newServer(config.Default(), nil)
	assert.Equal(t, ":8080", server.Addr)

	recorder := httptest.NewRecorder()
	server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/api/v1/themes", recorder.Header().Get("Location"))
}

func TestServerWriteRateLimit(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{MaxPerWindow: 1, Window: time.Minute})
	defer limiter.Close()
	server := newServer(config.Default(), limiter)

	// The first POST reaches the mux (405), the second is stopped by the limiter.
	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		recorder := httptest.NewRecorder()
		server.Handler.ServeHTTP(recorder, req)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusMethodNotAllowed, http.StatusTooManyRequests}, codes)
}

func TestServerLogsRateLimitedRequests(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	limiter := ratelimit.New(&ratelimit.Config{MaxPerWindow: 1, Window: time.Minute})
	defer limiter.Close()
	server := newServer(config.Default(), limiter)

	var last *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/themes/brand", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		last = httptest.NewRecorder()
		server.Handler.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	requestID := last.Header().Get("X-Request-ID")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, buf.String(), `"status":429`)
	assert.Contains(t, buf.String(), `"request_id":"`+requestID+`"`)
}
