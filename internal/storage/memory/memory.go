// Package memory реализует хранилище в памяти процесса.
// Используется при storage_type: memory — контракт чтения и записи
// совпадает с постоянным хранилищем, но без долговечности данных.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
)

// Storage хранит пользователей, подписки и отчёты в таблицах, ключ — email.
// Один мьютекс покрывает все таблицы: операций чтения-изменения-записи
// между разными учётными записями координация не требуется.
type Storage struct {
	mu            sync.RWMutex
	users         map[string]models.User
	subscriptions map[string]models.Subscription
	reports       map[string][]models.Report
	nextReportID  int64
}

// New создаёт пустое хранилище в памяти.
func New() *Storage {
	return &Storage{
		users:         make(map[string]models.User),
		subscriptions: make(map[string]models.Subscription),
		reports:       make(map[string][]models.Report),
		nextReportID:  1,
	}
}

// CreateUser атомарно сохраняет пользователя и его пробную подписку.
func (s *Storage) CreateUser(_ context.Context, user models.User, sub models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return storage.ErrUserExists
	}
	s.users[user.Email] = user
	s.subscriptions[user.Email] = sub
	return nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &u, nil
}

// UpdateUser перезаписывает профиль существующего пользователя.
func (s *Storage) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; !ok {
		return storage.ErrUserNotFound
	}
	s.users[user.Email] = user
	return nil
}

// UpdateUserPassword заменяет хэш пароля пользователя.
func (s *Storage) UpdateUserPassword(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	s.users[email] = u
	return nil
}

// CountUsers возвращает общее количество зарегистрированных пользователей.
func (s *Storage) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// GetSubscription возвращает запись о подписке пользователя.
func (s *Storage) GetSubscription(_ context.Context, email string) (*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subscriptions[email]
	if !ok {
		return nil, storage.ErrSubscriptionNotFound
	}
	return &sub, nil
}

// UpsertSubscription сохраняет запись о подписке, создавая её при отсутствии.
func (s *Storage) UpsertSubscription(_ context.Context, sub models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[sub.UserEmail] = sub
	return nil
}

// CountSubscriptionsByStatus возвращает количество подписок в разрезе статусов.
func (s *Storage) CountSubscriptionsByStatus(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, sub := range s.subscriptions {
		counts[sub.Status]++
	}
	return counts, nil
}

// SaveReport добавляет отчёт пользователя и возвращает его ID.
func (s *Storage) SaveReport(_ context.Context, report models.Report) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = s.nextReportID
	s.nextReportID++
	s.reports[report.UserEmail] = append(s.reports[report.UserEmail], report)
	return report.ID, nil
}

// ListReports возвращает отчёты пользователя, сначала самые свежие по времени загрузки.
func (s *Storage) ListReports(_ context.Context, email string, limit int) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	own := s.reports[email]
	result := make([]*models.Report, 0, len(own))
	for i := range own {
		r := own[i]
		result = append(result, &r)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Close ничего не освобождает: данные живут только в памяти процесса.
func (s *Storage) Close() error { return nil }
