package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
)

// GetSubscription возвращает запись о подписке пользователя.
func (s *Storage) GetSubscription(ctx context.Context, email string) (*models.Subscription, error) {
	const op = "storage.postgres.GetSubscription"

	query := `SELECT user_email, status, trial_ends_at, current_period_end
			  FROM subscriptions
			  WHERE user_email = $1;`
	sub := &models.Subscription{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var trialEndsAt, currentPeriodEnd sql.NullTime
	if err := row.Scan(&sub.UserEmail, &sub.Status, &trialEndsAt, &currentPeriodEnd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if trialEndsAt.Valid {
		sub.TrialEndsAt = trialEndsAt.Time
	}
	if currentPeriodEnd.Valid {
		sub.CurrentPeriodEnd = currentPeriodEnd.Time
	}
	return sub, nil
}

// UpsertSubscription сохраняет запись о подписке, создавая её при отсутствии.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.postgres.UpsertSubscription"

	query := `INSERT INTO subscriptions (user_email, status, trial_ends_at, current_period_end)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_email) DO UPDATE
			  SET status = EXCLUDED.status,
			      trial_ends_at = EXCLUDED.trial_ends_at,
			      current_period_end = EXCLUDED.current_period_end;`
	if _, err := s.DB.ExecContext(ctx, query,
		sub.UserEmail, sub.Status, sub.TrialEndsAt, sub.CurrentPeriodEnd); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountSubscriptionsByStatus возвращает количество подписок в разрезе статусов.
func (s *Storage) CountSubscriptionsByStatus(ctx context.Context) (map[string]int, error) {
	const op = "storage.postgres.CountSubscriptionsByStatus"

	query := `SELECT status, COUNT(*)
			  FROM subscriptions
			  GROUP BY status;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
