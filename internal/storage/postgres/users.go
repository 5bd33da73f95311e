package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

// CreateUser сохраняет пользователя и его пробную подписку в одной транзакции.
func (s *Storage) CreateUser(ctx context.Context, user models.User, sub models.Subscription) error {
	const op = "storage.postgres.CreateUser"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO users (uid, email, name, company, phone, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7);`
	if _, err = tx.ExecContext(ctx, query,
		user.UID, user.Email, user.Name, user.Company, user.Phone,
		user.PasswordHash, user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrUserExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO subscriptions (user_email, status, trial_ends_at, current_period_end)
			 VALUES ($1, $2, $3, $4);`
	if _, err = tx.ExecContext(ctx, query,
		sub.UserEmail, sub.Status, sub.TrialEndsAt, sub.CurrentPeriodEnd); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	query := `SELECT uid, email, name, company, phone, password_hash, created_at
			  FROM users
			  WHERE email = $1;`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)

	var company, phone sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &company, &phone,
		&u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u.Company = company.String
	u.Phone = phone.String
	return u, nil
}

// UpdateUser обновляет профиль пользователя: имя, компанию и телефон.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) error {
	const op = "storage.postgres.UpdateUser"

	query := `UPDATE users
			  SET name = $1, company = $2, phone = $3
			  WHERE email = $4;`
	res, err := s.DB.ExecContext(ctx, query, user.Name, user.Company, user.Phone, user.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

// UpdateUserPassword заменяет хэш пароля пользователя.
func (s *Storage) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	const op = "storage.postgres.UpdateUserPassword"

	query := `UPDATE users
			  SET password_hash = $1
			  WHERE email = $2;`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

// CountUsers возвращает общее количество зарегистрированных пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.postgres.CountUsers"

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
