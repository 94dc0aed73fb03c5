package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue pago recibido. ReferenceMonth (YYYY-MM, opcional) indica qué período liquida,
// con independencia de la fecha en que se pagó.
type Revenue struct {
	ID             string
	UserID         string
	RevenueDate    time.Time
	Amount         decimal.Decimal
	Description    string
	ReferenceMonth string
	CreatedAt      time.Time
}

// HasReferenceMonth indica si el pago está asociado explícitamente a un mes.
func (r *Revenue) HasReferenceMonth() bool {
	return r.ReferenceMonth != ""
}
