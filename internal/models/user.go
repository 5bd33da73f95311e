// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Email является уникальным идентификатором учётной записи.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная, регистрозависимая)
	Name         string    // Имя пользователя
	Company      string    // Компания (опционально)
	Phone        string    // Телефон (опционально)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}

// UserView — безопасное для клиента представление пользователя
// вместе с состоянием его подписки. Хэш пароля сюда не попадает никогда.
type UserView struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Company       string `json:"company,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Subscription  string `json:"subscription"`
	Trial         bool   `json:"trial"`
	TrialDaysLeft int    `json:"trial_days_left"`
}
