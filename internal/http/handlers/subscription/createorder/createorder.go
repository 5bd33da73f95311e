// Package createorder реализует HTTP-обработчик создания платёжного заказа.
// Локальное состояние не изменяется: заказ создаётся на стороне провайдера.
package createorder

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cod-analytics/backend/internal/http/middlewarectx"
	"github.com/cod-analytics/backend/internal/http/response"
	"github.com/cod-analytics/backend/internal/paymentprovider"
)

// OrderCreator описывает интерфейс клиента платёжного провайдера.
type OrderCreator interface {
	CreateOrder(email string) paymentprovider.Order
}

// Handler обрабатывает HTTP-запросы создания заказа.
type Handler struct {
	log      *slog.Logger
	provider OrderCreator
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, provider OrderCreator) *Handler {
	return &Handler{log: log, provider: provider}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.createorder"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	order := h.provider.CreateOrder(email)
	log.Info("payment order created", slog.String("order_id", order.OrderID), slog.String("email", email))

	render.JSON(w, r, response.OKWithData(order))
}
