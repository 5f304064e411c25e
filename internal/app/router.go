package app

import (
	"log/slog"
	"net/http"

	"github.com/ren-lyn/midterm-lab3/internal/config"
	"github.com/ren-lyn/midterm-lab3/internal/transport/middleware"
	"github.com/ren-lyn/midterm-lab3/internal/transport/rest"
)

// NewRouter registers the API routes and wraps them in the middleware
// chain. limiter may be nil when rate limiting is disabled.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	users *rest.UsersHandler,
	health *rest.HealthHandler,
	limiter *middleware.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", rest.Welcome)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/users", users.List)
	mux.HandleFunc("POST /api/users", users.Create)
	mux.HandleFunc("GET /api/users/{id}", users.Get)
	mux.HandleFunc("PUT /api/users/{id}", users.Update)
	mux.HandleFunc("DELETE /api/users/{id}", users.Delete)

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if limiter != nil && cfg.RateLimit.Enabled() {
		mws = append(mws, limiter.Limit())
	}

	return middleware.Chain(mws...)(mux)
}
