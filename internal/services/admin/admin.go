// Package admin собирает агрегированную статистику по учётным записям и подпискам.
package admin

import (
	"context"

	"github.com/cod-analytics/backend/internal/models"
)

// Repository определяет агрегирующие методы хранилища.
type Repository interface {
	CountUsers(ctx context.Context) (int, error)
	CountSubscriptionsByStatus(ctx context.Context) (map[string]int, error)
}

// Service отдаёт статистику для привилегированных учётных записей.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats возвращает общее количество пользователей и количество подписок
// по каждому статусу. Отсутствующие статусы присутствуют в ответе с нулём.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountSubscriptionsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		models.StatusTrial:     0,
		models.StatusActive:    0,
		models.StatusCancelled: 0,
		models.StatusExpired:   0,
	}
	for status, count := range byStatus {
		counts[status] = count
	}

	return &models.Stats{
		TotalUsers:    total,
		Subscriptions: counts,
	}, nil
}
