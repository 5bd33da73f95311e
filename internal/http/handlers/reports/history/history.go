// Package history реализует HTTP-обработчик выдачи недавних отчётов пользователя.
// Возвращаются только собственные отчёты вызывающей учётной записи.
package history

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cod-analytics/backend/internal/http/middlewarectx"
	"github.com/cod-analytics/backend/internal/http/response"
	"github.com/cod-analytics/backend/internal/lib/sl"
	"github.com/cod-analytics/backend/internal/models"
)

// Service описывает интерфейс чтения истории отчётов.
type Service interface {
	History(ctx context.Context, email string) ([]*models.Report, error)
}

// Handler обрабатывает HTTP-запросы истории отчётов.
type Handler struct {
	log     *slog.Logger
	reports Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, reports Service) *Handler {
	return &Handler{log: log, reports: reports}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reports.history"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	reports, err := h.reports.History(r.Context(), email)
	if err != nil {
		log.Error("failed to load history", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load history"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"reports": reports,
	}))
}
