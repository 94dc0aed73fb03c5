package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
)

var _ repository.SharedReportRepository = (*SharedReportRepo)(nil)

// SharedReportRepo persiste las instantáneas de informes compartidos (report_data JSONB).
type SharedReportRepo struct {
	q Querier
}

func NewSharedReportRepository(q Querier) *SharedReportRepo {
	return &SharedReportRepo{q: q}
}

func (r *SharedReportRepo) Create(ctx context.Context, s *entity.SharedReport) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO shared_reports (id, user_id, report_type, report_title, report_data, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.ReportType, s.ReportTitle, []byte(s.ReportData), s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("shared report id already exists: %w", err)
		}
		return fmt.Errorf("insert shared report: %w", err)
	}
	return nil
}

// GetByID no filtra por usuario: el ID es el token público.
func (r *SharedReportRepo) GetByID(ctx context.Context, id string) (*entity.SharedReport, error) {
	var s entity.SharedReport
	var data []byte
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, report_type, report_title, report_data, created_at, expires_at
		FROM shared_reports WHERE id = $1`, id).Scan(
		&s.ID, &s.UserID, &s.ReportType, &s.ReportTitle, &data, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shared report: %w", err)
	}
	s.ReportData = data
	return &s, nil
}

func (r *SharedReportRepo) ListByUser(ctx context.Context, userID string) ([]*entity.SharedReport, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, report_type, report_title, created_at, expires_at
		FROM shared_reports WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list shared reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.SharedReport
	for rows.Next() {
		var s entity.SharedReport
		if err := rows.Scan(&s.ID, &s.UserID, &s.ReportType, &s.ReportTitle, &s.CreatedAt, &s.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan shared report: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SharedReportRepo) UpdateExpiry(ctx context.Context, userID, id string, expiresAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE shared_reports SET expires_at = $3 WHERE id = $1 AND user_id = $2`, id, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("update shared report expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete es idempotente.
func (r *SharedReportRepo) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shared_reports WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("delete shared report: %w", err)
	}
	return nil
}
