package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
)

// InvoiceTotals suma de notas validadas, separadas en escaneadas y manuales.
type InvoiceTotals struct {
	ScannedCount int
	ScannedValue decimal.Decimal
	ManualCount  int
	ManualValue  decimal.Decimal
	ItemCount    int
}

// Count número total de notas.
func (t InvoiceTotals) Count() int { return t.ScannedCount + t.ManualCount }

// Value valor total (escaneadas + manuales).
func (t InvoiceTotals) Value() decimal.Decimal { return t.ScannedValue.Add(t.ManualValue) }

// SumInvoiceValue suma TotalValue de las notas validadas; las no validadas se ignoran.
// Un slice vacío o nil da todo cero.
func SumInvoiceValue(invoices []*entity.Invoice) InvoiceTotals {
	t := InvoiceTotals{ScannedValue: decimal.Zero, ManualValue: decimal.Zero}
	for _, inv := range invoices {
		if inv == nil || !inv.IsValidated {
			continue
		}
		if inv.IsManualEntry {
			t.ManualCount++
			t.ManualValue = t.ManualValue.Add(inv.TotalValue)
		} else {
			t.ScannedCount++
			t.ScannedValue = t.ScannedValue.Add(inv.TotalValue)
		}
		t.ItemCount += len(inv.Items)
	}
	return t
}

// SumInvoicesIn suma el valor de las notas validadas con delivery_date dentro de r.
func SumInvoicesIn(invoices []*entity.Invoice, r period.Range) decimal.Decimal {
	return SumInvoiceValue(InvoicesIn(invoices, r)).Value()
}

// InvoicesIn filtra por delivery_date dentro de r.
func InvoicesIn(invoices []*entity.Invoice, r period.Range) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv != nil && r.Contains(inv.DeliveryDate) {
			out = append(out, inv)
		}
	}
	return out
}

// SumDebts suma de importes de deudas.
func SumDebts(debts []*entity.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d != nil {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// SumDebtsIn suma las deudas con debt_date dentro de r.
func SumDebtsIn(debts []*entity.Debt, r period.Range) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d != nil && r.Contains(d.DebtDate) {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// SumRevenues suma de importes de pagos.
func SumRevenues(revenues []*entity.Revenue) decimal.Decimal {
	total := decimal.Zero
	for _, r := range revenues {
		if r != nil {
			total = total.Add(r.Amount)
		}
	}
	return total
}
