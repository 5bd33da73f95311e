// Package storage определяет контракт хранилища и его сигнальные ошибки.
// Конкретные реализации живут в подпакетах memory и postgres и выбираются
// конфигурацией, а не глобальным состоянием.
package storage

import (
	"context"
	"errors"

	"github.com/cod-analytics/backend/internal/models"
)

var (
	// ErrUserExists возвращается при попытке зарегистрировать занятый email.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubscriptionNotFound возвращается, если у пользователя нет записи о подписке.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Interface объединяет все операции хранилища, необходимые приложению.
// Сервисы зависят от собственных узких интерфейсов; Interface нужен
// слою сборки, чтобы выбрать реализацию по конфигурации.
type Interface interface {
	// CreateUser атомарно сохраняет пользователя вместе с его пробной подпиской.
	CreateUser(ctx context.Context, user models.User, sub models.Subscription) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	UpdateUserPassword(ctx context.Context, email, passwordHash string) error
	CountUsers(ctx context.Context) (int, error)

	GetSubscription(ctx context.Context, email string) (*models.Subscription, error)
	// UpsertSubscription сохраняет запись о подписке, создавая её при отсутствии.
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
	CountSubscriptionsByStatus(ctx context.Context) (map[string]int, error)

	SaveReport(ctx context.Context, report models.Report) (int64, error)
	ListReports(ctx context.Context, email string, limit int) ([]*models.Report, error)

	Close() error
}
