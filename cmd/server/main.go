package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"map2map-portal/internal/adapter/api/rest"
	"map2map-portal/internal/adapter/cache/redis"
	"map2map-portal/internal/adapter/oauth/google"
	repo "map2map-portal/internal/adapter/storage/postgres"
	"map2map-portal/internal/adapter/web"
	"map2map-portal/internal/config"
	"map2map-portal/internal/core/service"
	"map2map-portal/internal/observability"
)

// -- MAIN --

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on environment variables")
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exited")
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init Tracing
	tpShutdown, err := observability.InitTracerProvider(ctx, "map2map-portal", cfg.OtelExporterEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := tpShutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// Init DB
	dbPool, err := repo.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// Run Migrations (Apply on Startup)
	if err := repo.RunMigrations(ctx, dbPool, logger); err != nil {
		return err
	}

	// Metrics: DB Stats Poller
	observability.StartDBStatsCollector(ctx, dbPool)

	// Init Redis (sessions + login state)
	redisAdapter := redis.NewAdapter(cfg.RedisAddr)
	defer redisAdapter.Close()
	if err := redisAdapter.WaitReady(ctx, logger); err != nil {
		return err
	}
	sessions := observability.NewInstrumentedSessionStore(redisAdapter)

	// Repository Init
	userRepo := repo.NewUserRepository(dbPool)
	businessRepo := repo.NewBusinessRepository(dbPool)

	// Service Init
	provider := google.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	authSvc := service.NewAuthService(userRepo, sessions, redisAdapter, provider, cfg.JWTSecret, cfg.SessionTTL, logger)
	resolver := service.NewCallbackResolver(authSvc, logger)
	chatSvc := service.NewChatService(cfg.ChatDelay, logger)
	businessSvc := service.NewBusinessService(businessRepo)

	// Init Handlers
	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	cookie := rest.SessionCookie{Name: rest.DefaultCookieName, Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}

	pageHandler := rest.NewPageHandler(renderer, chatSvc, businessSvc, logger)
	apiHandler := rest.NewHandler(chatSvc, businessSvc, logger)
	authHandler := rest.NewAuthHandler(authSvc, resolver, renderer, cookie, logger)
	var limiterOpts []rest.RateLimiterOption
	if cfg.TrustProxyHeaders {
		limiterOpts = append(limiterOpts, rest.WithTrustedProxyHeaders())
	}
	limiter := rest.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, limiterOpts...)

	// Init Router
	router := rest.NewRouter(
		pageHandler,
		apiHandler,
		authHandler,
		rest.Authenticate(authSvc, cookie, logger),
		limiter,
		rest.RequestID,
		rest.Logger(logger),
		rest.Recoverer(logger),
		rest.CORS(cfg.AllowedOrigins),
		observability.Middleware,
	)

	// Add /metrics endpoint
	// Note: Usually /metrics is on a separate admin port or protected, adding to main mux for simplicity
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(mux, "map2map-portal"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful Shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	return nil
}
