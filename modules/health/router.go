// Package health wires the relay's operational endpoints: the liveness and
// readiness probe and the Prometheus metrics exposition. Both are mounted
// outside the authenticated API surface.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alertflow/relay/pkg/httpserver"
)

// Mount attaches /health and /metrics to the router. Probes are run on
// every /health request; with none supplied the endpoint is a plain
// liveness check.
func Mount(ctx context.Context, r chi.Router, log *slog.Logger, reg *prometheus.Registry, probes ...func(context.Context) error) {
	r.Get("/health", httpserver.Healthcheck(ctx, log, probes...))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}
