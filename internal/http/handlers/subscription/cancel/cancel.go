// Package cancel реализует HTTP-обработчик отмены подписки.
//
// Отмена не обнуляет дату окончания оплаченного периода: в ответе
// возвращается дата, до которой доступ сохраняется. Повторная отмена
// не является ошибкой.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cod-analytics/backend/internal/http/middlewarectx"
	"github.com/cod-analytics/backend/internal/http/response"
	"github.com/cod-analytics/backend/internal/lib/sl"
	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
)

// Service описывает интерфейс отмены подписки.
type Service interface {
	Cancel(ctx context.Context, email string) (*models.Subscription, error)
}

// Handler обрабатывает HTTP-запросы отмены подписки.
type Handler struct {
	log  *slog.Logger
	subs Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{log: log, subs: subs}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	sub, err := h.subs.Cancel(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrSubscriptionNotFound) {
			log.Error("subscription not found", slog.String("email", email))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		log.Error("failed to cancel subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("subscription cancelled", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":      "subscription cancelled",
		"access_until": sub.CurrentPeriodEnd,
	}))
}
