// Package httptransport assembles the HTTP surface: middleware chain, visitor
// routes, health probes, and the metrics endpoint.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gatehouse/internal/platform/health"
	"gatehouse/internal/visitor/handler"
	"gatehouse/pkg/platform/middleware/request"
)

// Request bodies are small JSON documents; 64 KiB leaves generous headroom.
const maxBodyBytes = 64 << 10

// NewRouter wires the middleware chain and mounts all endpoints.
func NewRouter(visitors *handler.Handler, healthHandler *health.Handler, logger *slog.Logger, metrics *request.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(request.RequestID)
	r.Use(request.Recovery(logger))
	r.Use(request.RequestTime)
	r.Use(request.BodyLimit(maxBodyBytes))
	if metrics != nil {
		r.Use(observeRoutePattern(metrics))
	}

	visitors.Register(r)
	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// observeRoutePattern records per-endpoint latency labeled by the chi route
// pattern, not the raw path, so visitor IDs do not explode label cardinality.
func observeRoutePattern(metrics *request.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
				metrics.ObserveEndpointLatency(pattern, time.Since(start).Seconds())
			}
		})
	}
}
