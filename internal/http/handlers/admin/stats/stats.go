// Package stats реализует HTTP-обработчик агрегированной статистики.
// Маршрут защищён middleware AdminOnly: доступ только у привилегированных
// учётных записей из конфигурации.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cod-analytics/backend/internal/http/response"
	"github.com/cod-analytics/backend/internal/lib/sl"
	"github.com/cod-analytics/backend/internal/models"
)

// Service описывает интерфейс сбора статистики.
type Service interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// Handler обрабатывает HTTP-запросы статистики.
type Handler struct {
	log   *slog.Logger
	admin Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, admin Service) *Handler {
	return &Handler{log: log, admin: admin}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(stats))
}
