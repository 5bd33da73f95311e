// Package paymentprovider описывает взаимодействие с внешним платёжным шлюзом.
//
// Сейчас клиент работает в демонстрационном режиме: заказы создаются локально,
// а подпись платежа не проверяется. Это осознанная граница доверия,
// активация подписки происходит безусловно после вызова VerifySignature.
package paymentprovider

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cod-analytics/backend/internal/config"
)

// Order описывает созданный платёжный заказ.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// Client — клиент платёжного провайдера.
type Client struct {
	keyID     string
	keySecret string
	amount    int
	currency  string
}

// NewClient создаёт клиент по реквизитам из конфига.
func NewClient(cfg config.Payment) *Client {
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		amount:    cfg.Amount,
		currency:  cfg.Currency,
	}
}

// CreateOrder возвращает описание заказа на оплату подписки.
// Локальное состояние не изменяется: заказ живёт только на стороне провайдера.
func (c *Client) CreateOrder(email string) Order {
	return Order{
		OrderID:  fmt.Sprintf("order_%s", uuid.NewString()),
		Amount:   c.amount,
		Currency: c.currency,
		Key:      c.keyID,
	}
}

// VerifySignature проверяет подпись платежа у провайдера.
//
// TODO: проверять подпись через HMAC с keySecret, когда будет заведён
// боевой аккаунт шлюза. До этого любой платёж считается подтверждённым.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	return nil
}
