// File: cmd/server/main.go
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

	"github.com/gorilla/mux"

	"github.com/iyunix/go-smsproxy/internal/config"
	"github.com/iyunix/go-smsproxy/internal/handlers"
	"github.com/iyunix/go-smsproxy/internal/metrics"
	"github.com/iyunix/go-smsproxy/internal/middleware"
	"github.com/iyunix/go-smsproxy/internal/ratelimit"
	"github.com/iyunix/go-smsproxy/internal/services"
	"github.com/iyunix/go-smsproxy/internal/services/provider"
	"github.com/iyunix/go-smsproxy/internal/validation"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := services.NewLogger("smsproxy", cfg.LogLevel, cfg.Environment)
	slog.SetDefault(logger)

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// leave room for a provider call that runs to its own timeout
		WriteTimeout: cfg.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server starting",
		"addr", srv.Addr,
		"env", cfg.Environment,
		"upstream_timeout", cfg.Timeout,
		"countries", cfg.CountryList(),
		"services", cfg.ServiceList(),
		"rate_limit", cfg.RateLimitRequests,
		"metrics", cfg.MetricsEnabled,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server startup failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		return
	}
	logger.Info("server stopped")
}

// app holds the wired components behind the HTTP server.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	router  *mux.Router
	limiter *ratelimit.MemoryRateLimiter
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	return newAppWithClient(cfg, logger, nil)
}

// newAppWithClient wires everything; a nil client means a real provider client.
func newAppWithClient(cfg *config.Config, logger *slog.Logger, client provider.Client) (*app, error) {
	if client == nil {
		pcfg := provider.DefaultConfig()
		pcfg.APIURL = cfg.APIURL
		pcfg.Token = cfg.Token
		pcfg.Timeout = cfg.Timeout

		c, err := provider.NewTigerSMSClient(pcfg, logger)
		if err != nil {
			return nil, err
		}
		client = c
	}

	v, err := validation.New(cfg.AllowedCountries, cfg.AllowedServices)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, router: mux.NewRouter()}

	var routeMiddleware []mux.MiddlewareFunc
	if cfg.RateLimitRequests > 0 {
		a.limiter = ratelimit.NewMemoryRateLimiter(&ratelimit.Config{
			Limit:         cfg.RateLimitRequests,
			Window:        cfg.RateLimitWindow,
			CleanupPeriod: 5 * cfg.RateLimitWindow,
		})
		routeMiddleware = append(routeMiddleware, middleware.RateLimitMiddleware(a.limiter, logger))
	}

	service := services.NewActivationService(client, cfg.DefaultCountry, cfg.DefaultService)
	activationHandler := handlers.NewActivationHandler(v, service, logger)

	a.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	if cfg.MetricsEnabled {
		a.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	activationHandler.RegisterRoutes(a.router, routeMiddleware...)

	// --- Custom Error Handlers ---
	a.router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	a.router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	return a, nil
}

// Handler returns the router wrapped in the global middleware chain.
func (a *app) Handler() http.Handler {
	var h http.Handler = a.router
	h = middleware.RecoverPanic(a.logger)(h)
	h = middleware.LoggingMiddleware(a.logger, middleware.RouteTemplate(a.router))(h)
	h = middleware.RequestID(h)
	h = middleware.CORS(a.cfg.CORSAllowedOrigins)(h)
	return h
}

func (a *app) Close() {
	if a.limiter != nil {
		a.limiter.Close()
	}
}
