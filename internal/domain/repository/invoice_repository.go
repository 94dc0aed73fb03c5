package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
)

// InvoiceFilter criterios de consulta de notas por rango de delivery_date (inclusivo).
type InvoiceFilter struct {
	UserID    string
	From, To  time.Time
	Validated *bool // nil = todas
	// WithItems carga también las líneas (más costoso; los totales no lo necesitan).
	WithItems bool
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus ítems.
type InvoiceRepository interface {
	// Create persiste la cabecera y los ítems en una sola transacción.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	// SetValidated es la única mutación permitida sobre una nota existente.
	SetValidated(ctx context.Context, userID, id string, validated bool) error
	Delete(ctx context.Context, userID, id string) error
}
