package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pollution-reporter/internal/adapter/redis"
	"github.com/heartmarshall/pollution-reporter/internal/adapter/redis/statscache"
	"github.com/heartmarshall/pollution-reporter/internal/auth"
	"github.com/heartmarshall/pollution-reporter/internal/config"
	"github.com/heartmarshall/pollution-reporter/internal/service/account"
	"github.com/heartmarshall/pollution-reporter/internal/service/report"
	"github.com/heartmarshall/pollution-reporter/internal/transport/middleware"
	"github.com/heartmarshall/pollution-reporter/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// storage backend and optional cache, and serves HTTP until ctx is
// cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	st, err := OpenStorage(ctx, cfg, cfg.Storage.MigrateOnStart, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.Close()

	checks := []rest.HealthCheck{{Name: "storage", Pinger: st.Reports}}

	// A nil interface disables caching; never assign a typed nil here.
	var cache report.StatsCache
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		cache = statscache.New(rdb, cfg.Redis.StatsTTL)
		checks = append(checks, rest.HealthCheck{Name: "cache", Pinger: redis.Pinger{Client: rdb}})
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.PasswordHashCost)

	accounts := account.NewService(logger, st.Accounts, hasher, tokens)
	reports := report.NewService(logger, st.Reports, cache, report.Limits{
		MaxFiles:     cfg.Upload.MaxFiles,
		MaxFileBytes: cfg.Upload.MaxFileBytes,
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := NewRouter(RouterDeps{
		Health:   rest.NewHealthHandler(BuildVersion(), checks...),
		Auth:     rest.NewAuthHandler(accounts, logger),
		Reports:  rest.NewReportHandler(reports, uploadLimits(cfg.Upload), logger),
		Accounts: accounts,
		Limiter:  limiter,
		Config:   cfg,
		Log:      logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done or the listener fails, then drains
// in-flight requests for at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func uploadLimits(cfg config.UploadConfig) rest.UploadLimits {
	return rest.UploadLimits{
		MaxRequestBytes: cfg.MaxRequestBytes,
		MaxFileBytes:    cfg.MaxFileBytes,
		MaxFiles:        cfg.MaxFiles,
	}
}
