package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audit "portal/pkg/platform/audit"
	"portal/pkg/platform/httputil"
	"portal/pkg/platform/middleware/auth"
	"portal/pkg/platform/middleware/metadata"
	"portal/pkg/platform/middleware/request"
	"portal/pkg/platform/middleware/requesttime"
	"portal/pkg/requestcontext"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig holds what the router needs beyond the route groups.
type RouterConfig struct {
	Logger    *slog.Logger
	Validator auth.JWTValidator
	Auditor   AuditPublisher
	Gatherer  prometheus.Gatherer
	Checks    map[string]HealthCheck
	Timeout   time.Duration
}

// NewRouter wires the public endpoints. Every group in protected sits behind
// bearer auth; /health and /metrics do not.
func NewRouter(cfg RouterConfig, protected ...Registrar) http.Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(cfg.Logger))
	r.Use(chimw.Timeout(cfg.Timeout))

	r.Get("/health", healthHandler(cfg.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(cfg.Validator, cfg.Logger, auth.WithFailureHook(authFailureAuditor(cfg.Auditor))))
		for _, g := range protected {
			g.Register(r)
		}
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		body := map[string]any{"status": "ok", "checks": results}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}

func authFailureAuditor(a AuditPublisher) auth.FailureHook {
	if a == nil {
		return nil
	}
	return func(ctx context.Context, reason string) {
		_ = a.Emit(ctx, audit.Event{
			Action:    string(audit.EventAuthFailed),
			Subject:   requestcontext.ClientIP(ctx),
			RequestID: requestcontext.RequestID(ctx),
			Detail:    reason,
		})
	}
}
