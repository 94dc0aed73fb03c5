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

var _ repository.RevenueRepository = (*RevenueRepo)(nil)

// RevenueRepo implementación de RevenueRepository.
type RevenueRepo struct {
	q Querier
}

// NewRevenueRepository construye el adaptador.
func NewRevenueRepository(q Querier) *RevenueRepo {
	return &RevenueRepo{q: q}
}

const revenueColumns = `id, user_id, revenue_date, amount, description, reference_month, created_at`

func (r *RevenueRepo) Create(ctx context.Context, rev *entity.Revenue) error {
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO revenues (id, user_id, revenue_date, amount, description, reference_month, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rev.ID, rev.UserID, rev.RevenueDate, rev.Amount,
		nullIfEmpty(rev.Description), nullIfEmpty(rev.ReferenceMonth), rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert revenue: %w", err)
	}
	return nil
}

func (r *RevenueRepo) Update(ctx context.Context, rev *entity.Revenue) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE revenues
		SET revenue_date = $3, amount = $4, description = $5, reference_month = $6
		WHERE id = $1 AND user_id = $2`,
		rev.ID, rev.UserID, rev.RevenueDate, rev.Amount,
		nullIfEmpty(rev.Description), nullIfEmpty(rev.ReferenceMonth),
	)
	if err != nil {
		return fmt.Errorf("update revenue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RevenueRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM revenues WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete revenue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RevenueRepo) GetByID(ctx context.Context, userID, id string) (*entity.Revenue, error) {
	row := r.q.QueryRow(ctx, `SELECT `+revenueColumns+` FROM revenues WHERE id = $1 AND user_id = $2`, id, userID)
	rev, err := scanRevenue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get revenue: %w", err)
	}
	return rev, nil
}

func (r *RevenueRepo) ListByDate(ctx context.Context, userID string, from, to time.Time) ([]*entity.Revenue, error) {
	return r.list(ctx, `SELECT `+revenueColumns+` FROM revenues
		WHERE user_id = $1 AND revenue_date BETWEEN $2 AND $3
		ORDER BY revenue_date DESC, created_at DESC`, userID, from, to)
}

func (r *RevenueRepo) ListAll(ctx context.Context, userID string) ([]*entity.Revenue, error) {
	return r.list(ctx, `SELECT `+revenueColumns+` FROM revenues
		WHERE user_id = $1 ORDER BY revenue_date DESC, created_at DESC`, userID)
}

func (r *RevenueRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Revenue, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list revenues: %w", err)
	}
	defer rows.Close()
	var list []*entity.Revenue
	for rows.Next() {
		rev, err := scanRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

func scanRevenue(row pgx.Row) (*entity.Revenue, error) {
	var rev entity.Revenue
	var desc, refMonth *string
	if err := row.Scan(&rev.ID, &rev.UserID, &rev.RevenueDate, &rev.Amount, &desc, &refMonth, &rev.CreatedAt); err != nil {
		return nil, err
	}
	rev.Description = derefStr(desc)
	rev.ReferenceMonth = derefStr(refMonth)
	return &rev, nil
}
