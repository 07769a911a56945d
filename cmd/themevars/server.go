// cmd/themevars/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codr1/themevars/internal/api"
	"github.com/codr1/themevars/internal/api/themes"
	"github.com/codr1/themevars/internal/config"
	"github.com/codr1/themevars/internal/ratelimit"
)

// newServer builds the HTTP server. limiter may be nil to disable write rate
// limiting.
func newServer(cfg *config.Config, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain. Each entry wraps the ones before it, so the
	// request id is outermost and logging sees every response.
	var middleware []api.Middleware
	if limiter != nil {
		middleware = append(middleware, api.WithWriteRateLimit(limiter, cfg.RateLimit.TrustProxy))
	}
	middleware = append(middleware, api.WithCORS, api.WithContentType, api.WithRecovery, api.WithLogging, api.WithRequestID)
	handler := api.ChainMiddleware(router, middleware...)

	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/v1/themes", http.StatusFound)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	themes.RegisterRoutes(mux)
}
