// Package app собирает приложение: хранилище по конфигурации, кеш,
// сервисы, маршруты и HTTP-сервер с корректным завершением.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/cod-analytics/backend/internal/cache"
	"github.com/cod-analytics/backend/internal/config"
	jwtlib "github.com/cod-analytics/backend/internal/lib/jwt"
	"github.com/cod-analytics/backend/internal/migrations"
	"github.com/cod-analytics/backend/internal/paymentprovider"
	adminservice "github.com/cod-analytics/backend/internal/services/admin"
	authservice "github.com/cod-analytics/backend/internal/services/auth"
	reportservice "github.com/cod-analytics/backend/internal/services/report"
	subservice "github.com/cod-analytics/backend/internal/services/subscription"
	"github.com/cod-analytics/backend/internal/storage"
	"github.com/cod-analytics/backend/internal/storage/memory"
	"github.com/cod-analytics/backend/internal/storage/postgres"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     storage.Interface
}

// New собирает приложение по конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	var reportCache reportservice.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		reportCache = cacheRedis
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey)
	providerClient := paymentprovider.NewClient(cfg.Payment)

	subscriptionService := subservice.New(db, logger)
	authService := authservice.New(db, subscriptionService, jwtMaker,
		cfg.TokenTTL, cfg.RememberTTL, logger)
	reportService := reportservice.New(db, reportCache, logger)
	adminService := adminservice.New(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, jwtMaker,
		authService, subscriptionService, reportService, adminService, providerClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// newStorage выбирает реализацию хранилища по конфигурации, а не глобальному состоянию.
func newStorage(cfg *config.Config) (storage.Interface, error) {
	switch cfg.StorageType {
	case "memory", "":
		return memory.New(), nil
	case "postgres":
		db, err := postgres.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.StorageType)
	}
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
