package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
)

// RevenueRepository puerto de persistencia de pagos recibidos.
type RevenueRepository interface {
	Create(ctx context.Context, revenue *entity.Revenue) error
	Update(ctx context.Context, revenue *entity.Revenue) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*entity.Revenue, error)
	// ListByDate pagos con revenue_date dentro de [from, to].
	ListByDate(ctx context.Context, userID string, from, to time.Time) ([]*entity.Revenue, error)
	// ListAll todos los pagos del usuario; el emparejamiento por mes de referencia
	// se hace en memoria (ledger).
	ListAll(ctx context.Context, userID string) ([]*entity.Revenue, error)
}
