// Package app предоставляет маршруты приложения.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/cod-analytics/backend/internal/config"
	adminstats "github.com/cod-analytics/backend/internal/http/handlers/admin/stats"
	"github.com/cod-analytics/backend/internal/http/handlers/auth/login"
	"github.com/cod-analytics/backend/internal/http/handlers/auth/signup"
	profileget "github.com/cod-analytics/backend/internal/http/handlers/profile/get"
	"github.com/cod-analytics/backend/internal/http/handlers/profile/passwordchange"
	profileupdate "github.com/cod-analytics/backend/internal/http/handlers/profile/update"
	reporthistory "github.com/cod-analytics/backend/internal/http/handlers/reports/history"
	reportsave "github.com/cod-analytics/backend/internal/http/handlers/reports/save"
	"github.com/cod-analytics/backend/internal/http/handlers/subscription/cancel"
	"github.com/cod-analytics/backend/internal/http/handlers/subscription/createorder"
	"github.com/cod-analytics/backend/internal/http/handlers/subscription/verify"
	"github.com/cod-analytics/backend/internal/http/middlewarectx"
	jwtlib "github.com/cod-analytics/backend/internal/lib/jwt"
	"github.com/cod-analytics/backend/internal/paymentprovider"
	adminservice "github.com/cod-analytics/backend/internal/services/admin"
	authservice "github.com/cod-analytics/backend/internal/services/auth"
	reportservice "github.com/cod-analytics/backend/internal/services/report"
	subservice "github.com/cod-analytics/backend/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, jwtMaker jwtlib.Maker,
	authService *authservice.Service, subscriptionService *subservice.Service,
	reportService *reportservice.Service, adminService *adminservice.Service,
	providerClient *paymentprovider.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))

			r.Get("/user/profile", profileget.New(logger, authService).ServeHTTP)
			r.Put("/user/profile", profileupdate.New(logger, authService).ServeHTTP)
			r.Put("/user/password", passwordchange.New(logger, authService).ServeHTTP)

			r.Post("/subscription/create-order", createorder.New(logger, providerClient).ServeHTTP)
			r.Post("/subscription/verify", verify.New(logger, providerClient, subscriptionService).ServeHTTP)
			r.Post("/subscription/cancel", cancel.New(logger, subscriptionService).ServeHTTP)

			r.Post("/reports/save", reportsave.New(logger, reportService).ServeHTTP)
			r.Get("/reports/history", reporthistory.New(logger, reportService).ServeHTTP)

			// Привилегированные маршруты
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(cfg.IsAdmin, logger))
				r.Get("/admin/stats", adminstats.New(logger, adminService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Статические страницы фронтенда, если каталог настроен
	if cfg.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(cfg.StaticDir))
		r.Handle("/*", fileServer)
	}
}
