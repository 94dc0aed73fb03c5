package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt deuda/bonus "Corte & Cose": importe que un tercero debe al usuario y que se suma
// al saldo a recibir.
type Debt struct {
	ID          string
	UserID      string
	DebtDate    time.Time
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
