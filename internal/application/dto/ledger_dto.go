package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRequest body de POST/PUT /api/revenues.
type RevenueRequest struct {
	RevenueDate    string          `json:"revenue_date"` // YYYY-MM-DD
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	ReferenceMonth string          `json:"reference_month,omitempty"` // YYYY-MM
}

// RevenueResponse pago en respuestas.
type RevenueResponse struct {
	ID             string          `json:"id"`
	RevenueDate    string          `json:"revenue_date"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	ReferenceMonth string          `json:"reference_month,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DebtRequest body de POST/PUT /api/debts.
type DebtRequest struct {
	DebtDate    string          `json:"debt_date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// DebtResponse deuda Corte & Cose en respuestas.
type DebtResponse struct {
	ID          string          `json:"id"`
	DebtDate    string          `json:"debt_date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
