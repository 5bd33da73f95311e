// Package report реализует сохранение загруженных аналитических отчётов
// и выдачу недавней истории, включая кеширование горячих чтений.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cod-analytics/backend/internal/lib/sl"
	"github.com/cod-analytics/backend/internal/models"
)

// historyLimit — максимальное количество отчётов в истории.
const historyLimit = 20

// Repository определяет методы для работы с отчётами в хранилище.
type Repository interface {
	// SaveReport сохраняет отчёт и возвращает его ID.
	SaveReport(ctx context.Context, report models.Report) (int64, error)
	// ListReports возвращает отчёты пользователя, сначала самые свежие.
	ListReports(ctx context.Context, email string, limit int) ([]*models.Report, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с отчётами.
// cache может быть nil, если кеширование отключено конфигурацией.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Save сохраняет отчёт владельца и инвалидирует кеш его истории.
func (s *Service) Save(ctx context.Context, report models.Report) (int64, error) {
	report.UploadedAt = time.Now().UTC()

	id, err := s.repo.SaveReport(ctx, report)
	if err != nil {
		return 0, err
	}
	s.log.Info("report saved", slog.Int64("id", id), slog.String("email", report.UserEmail))

	if s.cache != nil {
		key := historyKey(report.UserEmail)
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate history cache", slog.String("key", key), sl.Err(err))
		}
	}
	return id, nil
}

// History возвращает последние отчёты пользователя (не более двадцати),
// используя кеш или хранилище. Доступ ограничен владельцем отчётов.
func (s *Service) History(ctx context.Context, email string) ([]*models.Report, error) {
	key := historyKey(email)
	if s.cache != nil {
		var cached []*models.Report
		found, err := s.cache.Get(key, &cached)
		if err != nil {
			return nil, err
		}
		if found {
			return cached, nil
		}
	}

	reports, err := s.repo.ListReports(ctx, email, historyLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(key, reports, time.Hour); err != nil {
			s.log.Warn("failed to cache history", slog.String("key", key), sl.Err(err))
		}
	}
	return reports, nil
}

func historyKey(email string) string {
	return fmt.Sprintf("reports:%s", email)
}
