// Package subscription реализует жизненный цикл подписки пользователя:
// создание пробного периода при регистрации, ленивое истечение на чтении,
// активацию после оплаты и отмену.
//
// Переходы статусов: trial -> {expired, active, cancelled};
// active -> {cancelled}; expired -> {active}. Отмена не обнуляет
// current_period_end: доступ сохраняется до конца оплаченного периода.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
)

const (
	// trialPeriod — длительность пробного периода с момента регистрации.
	trialPeriod = 7 * 24 * time.Hour
	// paidPeriod — длительность оплаченного периода после подтверждения платежа.
	paidPeriod = 30 * 24 * time.Hour
)

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	// GetSubscription возвращает подписку пользователя или storage.ErrSubscriptionNotFound.
	GetSubscription(ctx context.Context, email string) (*models.Subscription, error)
	// UpsertSubscription сохраняет подписку, создавая запись при отсутствии.
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
}

// Service реализует машину состояний подписки.
// Поле now подменяется в тестах для проверки граничных переходов.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// NewTrial строит пробную подписку для нового пользователя:
// статус trial, окончание пробного периода через семь дней.
func (s *Service) NewTrial(email string) models.Subscription {
	trialEndsAt := s.now().UTC().Add(trialPeriod)
	return models.Subscription{
		UserEmail:        email,
		Status:           models.StatusTrial,
		TrialEndsAt:      trialEndsAt,
		CurrentPeriodEnd: trialEndsAt,
	}
}

// Current возвращает подписку пользователя, применяя ленивую проверку истечения:
// если пробный период закончился, статус переводится в expired и сохраняется.
// Проверка выполняется на каждом чтении, фонового обхода записей нет.
// Отсутствующая запись читается как истёкшая подписка и не сохраняется.
func (s *Service) Current(ctx context.Context, email string) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, email)
	if errors.Is(err, storage.ErrSubscriptionNotFound) {
		return &models.Subscription{UserEmail: email, Status: models.StatusExpired}, nil
	}
	if err != nil {
		return nil, err
	}

	if sub.Status == models.StatusTrial && s.now().After(sub.TrialEndsAt) {
		sub.Status = models.StatusExpired
		if err := s.repo.UpsertSubscription(ctx, *sub); err != nil {
			return nil, fmt.Errorf("failed to persist trial expiry: %w", err)
		}
		s.log.Info("trial expired", slog.String("email", email))
	}
	return sub, nil
}

// TrialDaysLeft возвращает количество оставшихся дней пробного периода.
// Значение всегда вычисляется на чтении, никогда не хранится и не бывает отрицательным.
func (s *Service) TrialDaysLeft(sub *models.Subscription) int {
	if sub.Status != models.StatusTrial {
		return 0
	}
	left := sub.TrialEndsAt.Sub(s.now())
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// Activate переводит подписку в статус active после подтверждения платежа
// и продлевает оплаченный период на тридцать дней. Переход принимается
// безусловно: проверка подписи платежа — ответственность внешнего провайдера.
func (s *Service) Activate(ctx context.Context, email string) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, email)
	if errors.Is(err, storage.ErrSubscriptionNotFound) {
		sub = &models.Subscription{UserEmail: email}
	} else if err != nil {
		return nil, err
	}

	sub.Status = models.StatusActive
	sub.CurrentPeriodEnd = s.now().UTC().Add(paidPeriod)
	if err := s.repo.UpsertSubscription(ctx, *sub); err != nil {
		return nil, err
	}
	s.log.Info("subscription activated", slog.String("email", email))
	return sub, nil
}

// Cancel переводит подписку в статус cancelled. current_period_end не меняется,
// чтобы вызывающая сторона могла сообщить дату окончания доступа.
// Возвращает storage.ErrSubscriptionNotFound, если записи о подписке нет.
// Повторная отмена не является ошибкой.
func (s *Service) Cancel(ctx context.Context, email string) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, email)
	if err != nil {
		return nil, err
	}

	sub.Status = models.StatusCancelled
	if err := s.repo.UpsertSubscription(ctx, *sub); err != nil {
		return nil, err
	}
	s.log.Info("subscription cancelled", slog.String("email", email))
	return sub, nil
}

// View собирает безопасное для клиента представление пользователя и его подписки.
func (s *Service) View(user *models.User, sub *models.Subscription) models.UserView {
	return models.UserView{
		Email:         user.Email,
		Name:          user.Name,
		Company:       user.Company,
		Phone:         user.Phone,
		Subscription:  sub.Status,
		Trial:         sub.Status == models.StatusTrial,
		TrialDaysLeft: s.TrialDaysLeft(sub),
	}
}
