// Package models содержит доменные структуры, описывающие подписку пользователя
// и её жизненный цикл: пробный период, активация после оплаты, отмена, истечение.
package models

import "time"

// Статусы подписки. Переходы: trial -> {expired, active, cancelled};
// active -> {cancelled}; expired -> {active} (через оплату).
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Subscription представляет запись о подписке, ровно одна на пользователя.
// TrialEndsAt заполняется только для подписок, прошедших через пробный период.
// Количество оставшихся дней пробного периода нигде не хранится,
// оно всегда вычисляется на чтении.
type Subscription struct {
	UserEmail        string    // Email владельца подписки
	Status           string    // Текущий статус подписки
	TrialEndsAt      time.Time // Дата окончания пробного периода
	CurrentPeriodEnd time.Time // Дата окончания оплаченного (или пробного) периода
}

// SubscriptionView — представление подписки для клиента.
type SubscriptionView struct {
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}
