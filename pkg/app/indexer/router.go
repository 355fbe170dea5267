package indexer

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apperrors "github.com/petegordon/mferoll-sub000/pkg/app/errors"
	apphttp "github.com/petegordon/mferoll-sub000/pkg/app/http"
	betservice "github.com/petegordon/mferoll-sub000/pkg/bet/service"
	"github.com/petegordon/mferoll-sub000/pkg/config"
	engine "github.com/petegordon/mferoll-sub000/pkg/indexer"
)

const (
	defaultRequestTimeout = 60 * time.Second
	readyPingTimeout      = 2 * time.Second
)

// StatusProvider reports indexing progress
type StatusProvider interface {
	IsReady() bool
	Status() engine.Status
}

// Deps are the components served by the router
type Deps struct {
	Engine    StatusProvider
	WebSocket http.Handler
	Bets      betservice.Service
	Ping      func(ctx context.Context) error
}

// NewRouter builds the HTTP surface of the indexer process
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) chi.Router {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", apphttp.HandleError(func(w http.ResponseWriter, r *http.Request) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				return apperrors.UnavailableError(err, "database unavailable")
			}
		}
		if !deps.Engine.IsReady() {
			return apperrors.UnavailableError(nil, "indexer not ready")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
		return nil
	}))

	if cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// hijacked connections must not run under the timeout middleware
	if deps.WebSocket != nil {
		r.Handle("/ws", deps.WebSocket)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
			apphttp.WriteJSON(w, http.StatusOK, deps.Engine.Status())
		})

		betservice.RegisterRoutes(r, deps.Bets, logger)
	})

	return r
}
