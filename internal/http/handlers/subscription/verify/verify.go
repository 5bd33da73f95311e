// Package verify реализует HTTP-обработчик подтверждения оплаты подписки.
//
// Проверка подписи платежа делегируется клиенту платёжного провайдера,
// который сейчас работает в демонстрационном режиме и принимает любой платёж.
// После подтверждения подписка переводится в статус active.
package verify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cod-analytics/backend/internal/http/middlewarectx"
	"github.com/cod-analytics/backend/internal/http/response"
	"github.com/cod-analytics/backend/internal/lib/sl"
	"github.com/cod-analytics/backend/internal/models"
)

// Request — данные платежа от провайдера.
type Request struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Signature string `json:"signature"`
}

// SignatureVerifier описывает интерфейс проверки подписи платежа.
type SignatureVerifier interface {
	VerifySignature(orderID, paymentID, signature string) error
}

// Service описывает интерфейс активации подписки.
type Service interface {
	Activate(ctx context.Context, email string) (*models.Subscription, error)
}

// Handler обрабатывает HTTP-запросы подтверждения оплаты.
type Handler struct {
	log      *slog.Logger
	provider SignatureVerifier
	subs     Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, provider SignatureVerifier, subs Service) *Handler {
	return &Handler{log: log, provider: provider, subs: subs}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.provider.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		log.Error("payment verification failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("payment verification failed"))
		return
	}

	sub, err := h.subs.Activate(r.Context(), email)
	if err != nil {
		log.Error("failed to activate subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to activate subscription"))
		return
	}

	log.Info("subscription activated", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "subscription activated",
		"subscription": models.SubscriptionView{
			Status:           sub.Status,
			CurrentPeriodEnd: sub.CurrentPeriodEnd,
		},
	}))
}
