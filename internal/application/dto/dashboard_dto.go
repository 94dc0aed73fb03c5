package dto

import "github.com/shopspring/decimal"

// DashboardRequest parámetros de GET /api/dashboard.
// Month es el índice 0–11 y solo aplica con mode=month.
type DashboardRequest struct {
	Mode  string `query:"mode"`
	Year  int    `query:"year"`
	Month int    `query:"month"`
}

// DashboardDTO estadísticas del período seleccionado. Importes ya redondeados a céntimos.
type DashboardDTO struct {
	Mode        string `json:"mode"`
	PeriodKey   string `json:"period_key"`   // "2024-03" o "2024"
	PeriodLabel string `json:"period_label"` // "Março 2024"
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	TotalValue        decimal.Decimal `json:"total_value"`
	InvoiceCount      int             `json:"invoice_count"`      // notas escaneadas
	ManualEntryCount  int             `json:"manual_entry_count"` // entradas manuales
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`    // pagos imputados al período
	ProjectedEarnings decimal.Decimal `json:"projected_earnings"` // 30% de total_value
	CorteCoseDebt     decimal.Decimal `json:"corte_cose_debt"`

	// Acumulados desde el origen (2024-01-01)
	BalanceReceivable    decimal.Decimal `json:"balance_receivable"`
	PreviousMonthBalance decimal.Decimal `json:"previous_month_balance"` // nunca negativo
	PreviousMonthLabel   string          `json:"previous_month_label"`

	Chart []ChartPointDTO `json:"chart"`
}

// ChartPointDTO barra del gráfico: "Semana N" en modo mes, "jan".."dez" en modo año.
type ChartPointDTO struct {
	Label string          `json:"label"`
	Start string          `json:"start"`
	End   string          `json:"end"`
	Value decimal.Decimal `json:"value"`
}
