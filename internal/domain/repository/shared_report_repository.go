package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
)

// SharedReportRepository puerto de persistencia de los informes compartidos.
// GetByID no filtra por usuario: cualquiera con el ID puede leer (la expiración la
// decide la capa de aplicación).
type SharedReportRepository interface {
	Create(ctx context.Context, report *entity.SharedReport) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.SharedReport, error)
	// ListByUser devuelve los enlaces del usuario sin report_data, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.SharedReport, error)
	// UpdateExpiry devuelve ErrNotFound si el enlace no existe o no es del usuario.
	UpdateExpiry(ctx context.Context, userID, id string, expiresAt time.Time) error
	// Delete es idempotente: borrar un enlace inexistente no es error.
	Delete(ctx context.Context, userID, id string) error
}
