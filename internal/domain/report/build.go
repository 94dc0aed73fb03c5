package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/ledger"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/pkg/money"
)

const (
	dateLayout    = "02/01/2006"
	isoDateLayout = "2006-01-02"
)

// Input datos ya consultados para un informe.
// Invoices: notas del intervalo (se ignoran las no validadas), con ítems.
// Revenues: candidatos; el builder decide cuáles emparejan.
// Debts: deudas del intervalo.
type Input struct {
	Type           Type
	Range          period.Range
	ReferenceMonth string // solo payments-by-month, "YYYY-MM"
	Invoices       []*entity.Invoice
	Revenues       []*entity.Revenue
	Debts          []*entity.Debt
	GeneratedAt    time.Time
}

// Build calcula el informe completo: totales, emparejamiento de pagos, resumen y tabla.
func Build(in Input) (*Report, error) {
	shape, ok := shapers[in.Type]
	if !ok {
		return nil, fmt.Errorf("tipo de informe desconocido: %q", in.Type)
	}

	invoices := validatedSorted(in.Invoices)
	totals := ledger.SumInvoiceValue(invoices)

	var matched ledger.MatchResult
	var unmatched []ledger.RevenueMatch
	if in.Type.ByMonth() {
		sel, err := monthSelection(in.ReferenceMonth)
		if err != nil {
			return nil, err
		}
		matched = ledger.MatchRevenuesToPeriod(in.Revenues, sel, in.Range)
	} else {
		matched = ledger.MatchRevenuesToRange(in.Revenues, in.Range)
	}
	// Pagados en el intervalo pero imputados a otro período.
	unmatched = ledger.PaidIn(matched.Unmatched, in.Range)

	projected := money.Cents(ledger.ProjectedEarnings(totals.Value()))
	debts := money.Cents(ledger.SumDebts(in.Debts))
	paid := money.Cents(matched.Total())
	toReceive := projected.Add(debts)

	r := &Report{
		Type:              in.Type,
		From:              in.Range.Start.Format(isoDateLayout),
		To:                in.Range.End.Format(isoDateLayout),
		ReferenceMonth:    in.ReferenceMonth,
		Totals:            toTotals(totals),
		ProjectedEarnings: projected,
		ProjectedDisplay:  money.Format(projected),
		DebtsTotal:        debts,
		TotalToReceive:    toReceive,
		TotalPaid:         paid,
		Balance:           toReceive.Sub(paid),
		Revenues:          revenueLines(sortMatches(matched.Matched)),
		UnmatchedRevenues: revenueLines(sortMatches(unmatched)),
		Debts:             debtLines(in.Debts),
		GeneratedAt:       in.GeneratedAt,
	}
	r.Title, r.Heading, r.PeriodLabel = titles(in)
	r.Summary = summary(r)
	r.Table = shape(invoices, r)
	return r, nil
}

func titles(in Input) (title, heading, label string) {
	if in.Type.ByMonth() {
		sel, _ := monthSelection(in.ReferenceMonth)
		return "Pagamentos - " + sel.Label(),
			"Relatório de Pagamentos por Mês",
			"Mês de Referência: " + sel.Label()
	}
	span := fmt.Sprintf("%s a %s", in.Range.Start.Format(dateLayout), in.Range.End.Format(dateLayout))
	return in.Type.Label() + " - " + span, "Relatório de Notas Fiscais", "Período: " + span
}

// summary líneas de resumen en el orden en que se muestran.
func summary(r *Report) []SummaryLine {
	line := func(label string, amount decimal.Decimal, tone Tone) SummaryLine {
		return SummaryLine{Label: label, Amount: amount, Display: money.Format(amount), Tone: tone}
	}
	if r.Type.ByMonth() {
		return []SummaryLine{
			line("Total em Notas", r.Totals.TotalValue, ToneDefault),
			line("Projeção de Ganho (30%)", r.ProjectedEarnings, ToneProjected),
			line("Bonus Corte & Cose", r.DebtsTotal, ToneBonus),
			line("Total a Receber", r.TotalToReceive, ToneDefault),
			line("Total Pago", r.TotalPaid, ToneDefault),
			line("Saldo Pendente", r.Balance, ToneDefault),
		}
	}
	out := []SummaryLine{
		{Label: "Total de Notas", Amount: decimal.NewFromInt(int64(r.Totals.InvoiceCount)), Display: fmt.Sprintf("%d", r.Totals.InvoiceCount), Tone: ToneDefault},
		line("Valor Total", r.Totals.TotalValue, ToneDefault),
		line("Projeção de Ganhos (30%)", r.ProjectedEarnings, ToneProjected),
	}
	if r.Type == TypePayments {
		out = append(out,
			line("Total Bonus Corte & Cose", r.DebtsTotal, ToneBonus),
			line("Total a Receber", r.TotalToReceive, ToneDefault),
			line("Total Pago", r.TotalPaid, ToneDefault),
			line("Saldo", r.Balance, ToneDefault),
		)
	}
	return out
}

func monthSelection(key string) (period.Selection, error) {
	mr, err := period.ParseMonthKey(key)
	if err != nil {
		return period.Selection{}, err
	}
	return period.Selection{Mode: period.ModeMonth, Year: mr.Start.Year(), Month: int(mr.Start.Month()) - 1}, nil
}

func toTotals(t ledger.InvoiceTotals) Totals {
	return Totals{
		InvoiceCount: t.Count(),
		ScannedCount: t.ScannedCount,
		ScannedValue: money.Cents(t.ScannedValue),
		ManualCount:  t.ManualCount,
		ManualValue:  money.Cents(t.ManualValue),
		TotalValue:   money.Cents(t.Value()),
		ItemCount:    t.ItemCount,
	}
}

// validatedSorted notas validadas, más recientes primero.
func validatedSorted(invoices []*entity.Invoice) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv != nil && inv.IsValidated {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeliveryDate.After(out[j].DeliveryDate)
	})
	return out
}

func sortMatches(ms []ledger.RevenueMatch) []ledger.RevenueMatch {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Revenue.RevenueDate.Before(ms[j].Revenue.RevenueDate)
	})
	return ms
}

func revenueLines(ms []ledger.RevenueMatch) []RevenueLine {
	out := make([]RevenueLine, 0, len(ms))
	for _, m := range ms {
		amount := money.Cents(m.Revenue.Amount)
		out = append(out, RevenueLine{
			ID:             m.Revenue.ID,
			Date:           m.Revenue.RevenueDate.Format(isoDateLayout),
			Amount:         amount,
			Display:        money.Format(amount),
			Description:    m.Revenue.Description,
			ReferenceMonth: m.Revenue.ReferenceMonth,
			Match:          m.Kind.String(),
		})
	}
	return out
}

func debtLines(debts []*entity.Debt) []DebtLine {
	out := make([]DebtLine, 0, len(debts))
	for _, d := range debts {
		if d == nil {
			continue
		}
		amount := money.Cents(d.Amount)
		out = append(out, DebtLine{
			ID:          d.ID,
			Date:        d.DebtDate.Format(isoDateLayout),
			Amount:      amount,
			Display:     money.Format(amount),
			Description: d.Description,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
