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

var _ repository.DebtRepository = (*DebtRepo)(nil)

// DebtRepo implementación de DebtRepository (tabla corte_cose_debts).
type DebtRepo struct {
	q Querier
}

func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

func (r *DebtRepo) Create(ctx context.Context, d *entity.Debt) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO corte_cose_debts (id, user_id, debt_date, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.UserID, d.DebtDate, d.Amount, nullIfEmpty(d.Description), d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *DebtRepo) Update(ctx context.Context, d *entity.Debt) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE corte_cose_debts SET debt_date = $3, amount = $4, description = $5
		WHERE id = $1 AND user_id = $2`,
		d.ID, d.UserID, d.DebtDate, d.Amount, nullIfEmpty(d.Description),
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DebtRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM corte_cose_debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DebtRepo) GetByID(ctx context.Context, userID, id string) (*entity.Debt, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, user_id, debt_date, amount, description, created_at
		FROM corte_cose_debts WHERE id = $1 AND user_id = $2`, id, userID)
	d, err := scanDebt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

func (r *DebtRepo) ListByDate(ctx context.Context, userID string, from, to time.Time) ([]*entity.Debt, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, debt_date, amount, description, created_at
		FROM corte_cose_debts
		WHERE user_id = $1 AND debt_date BETWEEN $2 AND $3
		ORDER BY debt_date DESC, created_at DESC`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDebt(row pgx.Row) (*entity.Debt, error) {
	var d entity.Debt
	var desc *string
	if err := row.Scan(&d.ID, &d.UserID, &d.DebtDate, &d.Amount, &desc, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Description = derefStr(desc)
	return &d, nil
}
