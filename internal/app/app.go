// Package app wires the field cache engine's tiers, entity managers, and
// HTTP surface into a single process lifecycle: a phased New()/Run()
// bootstrap with a step-by-step initializer and signal-driven graceful
// shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bugielektrik/fieldcache/internal/entities/game"
	"github.com/bugielektrik/fieldcache/internal/entities/session"
	"github.com/bugielektrik/fieldcache/internal/entities/user"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/metrics"
	"github.com/bugielektrik/fieldcache/internal/passwordhash"
	"github.com/bugielektrik/fieldcache/internal/validation"
	"github.com/bugielektrik/fieldcache/pkg/config"
	"github.com/bugielektrik/fieldcache/pkg/log"
)

const shutdownTimeout = 20 * time.Second

// App holds every long-lived dependency the process needs to run and
// shut down cleanly.
type App struct {
	logger *zap.Logger
	config *config.Config

	registry	*prometheus.Registry
	metrics		*metrics.Recorder

	store	store.Client
	shared	sharedcache.Client

	Users		*user.Manager
	Games		*game.Manager
	Sessions	*session.Manager

	httpServer *http.Server
}

// New builds the application.
//
// Bootstrap order (must follow this sequence):
//  1. Logger - first so every later step can log
//  2. Config - environment/file/defaults
//  3. Authoritative store - Mongo connection
//  4. Shared cache - Redis connection, optional per config
//  5. Metrics registry
//  6. External collaborators - Validator, password hasher
//  7. Entity managers - User, Game, Session
//  8. HTTP server - health and metrics endpoints
func New() (*App, error) {
	a := &App{}

	a.logger = log.New()
	a.logger.Info("logger initialized")

	cfg := config.MustLoad("")
	a.config = cfg
	a.logger.Info("configuration loaded",
		zap.String("store_database", cfg.StoreDatabase),
		zap.Bool("redis_enable", cfg.RedisEnable))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	storeClient, err := store.NewMongoClient(ctx, cfg.StoreAddress, cfg.StoreDatabase)
	if err != nil {
		a.logger.Error("authoritative store connect failed", zap.Error(err))
		return nil, fmt.Errorf("app: connect store: %w", err)
	}
	a.store = storeClient
	a.logger.Info("authoritative store connected", zap.String("address", cfg.StoreAddress))

	if cfg.RedisEnable {
		redisClient, err := sharedcache.NewRedisClient(cfg.SharedCacheAddress)
		if err != nil {
			a.cleanup()
			a.logger.Error("shared cache connect failed", zap.Error(err))
			return nil, fmt.Errorf("app: connect shared cache: %w", err)
		}
		a.shared = redisClient
		a.logger.Info("shared cache connected", zap.String("address", cfg.SharedCacheAddress))
	} else {
		a.logger.Warn("shared cache disabled by configuration; running on local cache and store only")
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.NewRecorder(a.registry)
	a.logger.Info("metrics registered")

	validator := validation.New()
	hasher := passwordhash.New(cfg.PasswordHashRounds)

	ttl := int(cfg.SharedCacheTTL.Seconds())

	users, err := user.NewManager(a.shared, a.store, ttl, a.metrics, validator, hasher)
	if err != nil {
		a.cleanup()
		a.logger.Error("user manager init failed", zap.Error(err))
		return nil, fmt.Errorf("app: init user manager: %w", err)
	}
	a.Users = users

	games, err := game.NewManager(a.shared, a.store, ttl, a.metrics)
	if err != nil {
		a.cleanup()
		a.logger.Error("game manager init failed", zap.Error(err))
		return nil, fmt.Errorf("app: init game manager: %w", err)
	}
	a.Games = games

	sessions, err := session.NewManager(a.shared, a.store, ttl, a.metrics)
	if err != nil {
		a.cleanup()
		a.logger.Error("session manager init failed", zap.Error(err))
		return nil, fmt.Errorf("app: init session manager: %w", err)
	}
	a.Sessions = sessions
	a.logger.Info("entity managers initialized")

	a.httpServer = &http.Server{
		Addr:		cfg.HTTPAddress,
		Handler:	a.routes(),
	}
	a.logger.Info("http server initialized", zap.String("address", cfg.HTTPAddress))

	return a, nil
}

// routes builds the process's operational HTTP surface. Request
// routing and business endpoints beyond health/metrics are out of
// scope for the field cache engine itself.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	return r
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if a.shared != nil && !a.shared.Ready(ctx) {
		a.logger.Warn("healthz: shared cache unready")
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run starts the HTTP server and blocks until an interrupt or
// termination signal arrives, then shuts down every dependency within
// shutdownTimeout.
func (a *App) Run() error {
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("http server stopped unexpectedly", zap.Error(err))
		}
	}()
	a.logger.Info("application started", zap.String("address", a.config.HTTPAddress))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", zap.Error(err))
	}
	a.cleanup()

	a.logger.Info("application stopped gracefully")
	return nil
}

// cleanup closes whatever dependencies were successfully opened,
// tolerating partial initialization (called from New()'s error paths
// as well as from Run()'s shutdown path).
func (a *App) cleanup() {
	if a.shared != nil {
		if err := a.shared.Close(); err != nil {
			a.logger.Warn("shared cache close error", zap.Error(err))
		}
	}
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.Close(ctx); err != nil {
			a.logger.Warn("store close error", zap.Error(err))
		}
	}
}
