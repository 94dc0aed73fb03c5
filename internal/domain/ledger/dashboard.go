package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
)

// DashboardInput registros necesarios para el dashboard de una selección.
// Invoices y Debts deben cubrir al menos desde min(Inception, inicio del período) hasta el
// fin del período; Revenues son todos los pagos del usuario. El motor filtra por ventana.
type DashboardInput struct {
	Selection period.Selection
	Invoices  []*entity.Invoice
	Debts     []*entity.Debt
	Revenues  []*entity.Revenue
}

// Dashboard estadísticas del período, importes redondeados a céntimos.
type Dashboard struct {
	Selection            period.Selection
	Windows              period.Windows
	TotalValue           decimal.Decimal
	InvoiceCount         int // escaneadas
	ManualEntryCount     int
	MonthlyRevenue       decimal.Decimal // pagos emparejados al período
	ProjectedEarnings    decimal.Decimal
	CorteCoseDebt        decimal.Decimal
	BalanceReceivable    decimal.Decimal
	PreviousMonthBalance decimal.Decimal
	Chart                []Bucket
}

// BuildDashboard calcula el dashboard. Nunca falla: sin registros todo es cero.
func BuildDashboard(in DashboardInput) Dashboard {
	w := period.Resolve(in.Selection)

	current := SumInvoiceValue(InvoicesIn(in.Invoices, w.Current))
	matched := MatchRevenuesToPeriod(in.Revenues, in.Selection, w.Current)

	balance := Balance(
		SumInvoicesIn(in.Invoices, w.SinceInception),
		SumDebtsIn(in.Debts, w.SinceInception),
		MatchRevenuesToRange(in.Revenues, w.SinceInception).Total(),
	)
	previous := CarriedBalance(Balance(
		SumInvoicesIn(in.Invoices, w.UpToPrevMonth),
		SumDebtsIn(in.Debts, w.UpToPrevMonth),
		MatchRevenuesToRange(in.Revenues, w.UpToPrevMonth).Total(),
	))

	chart := Chart(InvoicesIn(in.Invoices, w.Current), in.Selection, w.Current)
	for i := range chart {
		chart[i].Value = chart[i].Value.Round(2)
	}

	return Dashboard{
		Selection:            in.Selection,
		Windows:              w,
		TotalValue:           current.Value().Round(2),
		InvoiceCount:         current.ScannedCount,
		ManualEntryCount:     current.ManualCount,
		MonthlyRevenue:       matched.Total().Round(2),
		ProjectedEarnings:    ProjectedEarnings(current.Value()).Round(2),
		CorteCoseDebt:        SumDebtsIn(in.Debts, w.Current).Round(2),
		BalanceReceivable:    balance.Round(2),
		PreviousMonthBalance: previous.Round(2),
		Chart:                chart,
	}
}

// FetchRange rango de fechas que debe cubrir la consulta de notas y deudas del dashboard.
func FetchRange(sel period.Selection) period.Range {
	w := period.Resolve(sel)
	start := period.Inception
	if w.Current.Start.Before(start) {
		start = w.Current.Start
	}
	return period.Range{Start: start, End: w.Current.End}
}
