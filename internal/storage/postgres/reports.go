package postgres

import (
	"context"
	"fmt"

	"github.com/cod-analytics/backend/internal/models"
)

// SaveReport сохраняет отчёт пользователя и возвращает его ID.
func (s *Storage) SaveReport(ctx context.Context, report models.Report) (int64, error) {
	const op = "storage.postgres.SaveReport"

	var newID int64
	query := `INSERT INTO reports (user_email, ts, cod_data, all_data, hub_name, uploaded_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		report.UserEmail, report.Timestamp, report.CodData, report.AllData,
		report.HubName, report.UploadedAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReports возвращает отчёты пользователя, сначала самые свежие по времени загрузки.
func (s *Storage) ListReports(ctx context.Context, email string, limit int) ([]*models.Report, error) {
	const op = "storage.postgres.ListReports"

	query := `SELECT id, user_email, ts, cod_data, all_data, hub_name, uploaded_at
			  FROM reports
			  WHERE user_email = $1
			  ORDER BY uploaded_at DESC
			  LIMIT $2;`
	rows, err := s.DB.QueryContext(ctx, query, email, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Report
	for rows.Next() {
		var r models.Report
		if err = rows.Scan(&r.ID, &r.UserEmail, &r.Timestamp, &r.CodData,
			&r.AllData, &r.HubName, &r.UploadedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
