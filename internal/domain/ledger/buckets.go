package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
)

// Bucket barra del gráfico.
type Bucket struct {
	Label string
	Range period.Range
	Value decimal.Decimal
}

// WeeklyBuckets ventanas consecutivas de 7 días desde r.Start; la última se recorta a
// r.End. Un mes de 31 días da 5 ventanas (la última de 3 días).
func WeeklyBuckets(invoices []*entity.Invoice, r period.Range) []Bucket {
	var out []Bucket
	for start, n := r.Start, 1; !start.After(r.End); start, n = start.AddDate(0, 0, 7), n+1 {
		end := start.AddDate(0, 0, 6)
		if end.After(r.End) {
			end = r.End
		}
		w := period.Range{Start: start, End: end}
		out = append(out, Bucket{
			Label: fmt.Sprintf("Semana %d", n),
			Range: w,
			Value: SumInvoicesIn(invoices, w),
		})
	}
	return out
}

// MonthlyBuckets los 12 meses del año con la abreviatura portuguesa ("jan", "fev"...).
func MonthlyBuckets(invoices []*entity.Invoice, year int) []Bucket {
	out := make([]Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		mr := period.MonthRange(year, m)
		out = append(out, Bucket{
			Label: period.MonthAbbrev(m),
			Range: mr,
			Value: SumInvoicesIn(invoices, mr),
		})
	}
	return out
}

// Chart elige el agrupamiento según el modo de la selección.
func Chart(invoices []*entity.Invoice, sel period.Selection, current period.Range) []Bucket {
	if sel.Mode == period.ModeYear {
		return MonthlyBuckets(invoices, sel.Year)
	}
	return WeeklyBuckets(invoices, current)
}
