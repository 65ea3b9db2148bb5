// Package httpapi assembles the HTTP surface: middleware chain, health and
// metrics endpoints, and the person registry routes. It should delegate to
// domain services without embedding business logic so transport concerns
// remain isolated.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	personHandler "github.com/Kamduis/name-combo/internal/person/handler"
	"github.com/Kamduis/name-combo/internal/platform/metrics"
	"github.com/Kamduis/name-combo/internal/platform/middleware"
	"github.com/Kamduis/name-combo/pkg/platform/httputil"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Person  *personHandler.Handler
	// Health checks run on /healthz, keyed by dependency name. Optional.
	Health map[string]HealthChecker
}

// NewRouter wires the middleware chain and all endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}

	r.Get("/healthz", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Person.Register(r)

	return r
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := "ok"
		deps := make(map[string]string, len(checks))
		code := http.StatusOK
		for name, check := range checks {
			if err := check.Health(ctx); err != nil {
				deps[name] = err.Error()
				status = "degraded"
				code = http.StatusServiceUnavailable
			} else {
				deps[name] = "ok"
			}
		}
		body := map[string]any{"status": status}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		httputil.WriteJSON(w, code, body)
	}
}
