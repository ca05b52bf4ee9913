package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/pollution-reporter/internal/config"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/internal/service/account"
	"github.com/heartmarshall/pollution-reporter/internal/transport/middleware"
	"github.com/heartmarshall/pollution-reporter/internal/transport/rest"
)

// RouterDeps are the handlers and shared middleware state the HTTP router
// is built from.
type RouterDeps struct {
	Health   *rest.HealthHandler
	Auth     *rest.AuthHandler
	Reports  *rest.ReportHandler
	Accounts *account.Service
	Limiter  *middleware.RateLimiter
	Config   *config.Config
	Log      *slog.Logger
}

// NewRouter wires every route with its middleware.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	staff := middleware.RequireRole(domain.AccountRoleTraffic, domain.AccountRoleAdmin)
	authLimit := d.Limiter.Limit("auth", d.Config.RateLimit.AuthPerMinute)
	submitLimit := d.Limiter.Limit("submit", d.Config.RateLimit.SubmitPerMinute)

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	mux.Handle("POST /api/auth/register", authLimit(http.HandlerFunc(d.Auth.Register)))
	mux.Handle("POST /api/auth/login", authLimit(http.HandlerFunc(d.Auth.Login)))
	mux.Handle("GET /api/auth/me", middleware.RequireAuth(http.HandlerFunc(d.Auth.Me)))

	mux.Handle("POST /api/reports", middleware.Chain(middleware.RequireAuth, submitLimit)(http.HandlerFunc(d.Reports.Submit)))
	mux.Handle("GET /api/reports", staff(http.HandlerFunc(d.Reports.List)))
	mux.Handle("GET /api/reports/{id}/image", staff(http.HandlerFunc(d.Reports.Image)))
	mux.HandleFunc("GET /api/stats", d.Reports.Stats)

	if dir := d.Config.Server.StaticDir; dir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Logger(d.Log),
		middleware.CORS(d.Config.CORS),
		middleware.Auth(d.Accounts),
	)(mux)
}
