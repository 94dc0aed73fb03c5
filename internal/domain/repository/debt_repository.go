package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
)

// DebtRepository puerto de persistencia de deudas Corte & Cose.
type DebtRepository interface {
	Create(ctx context.Context, debt *entity.Debt) error
	Update(ctx context.Context, debt *entity.Debt) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*entity.Debt, error)
	ListByDate(ctx context.Context, userID string, from, to time.Time) ([]*entity.Debt, error)
}
