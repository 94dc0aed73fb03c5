// Package dashboard contiene el caso de uso del dashboard por período.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/ledger"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase genera las estadísticas del período seleccionado.
//
// Fuente de datos: repositorios de notas, pagos y deudas (solo lectura).
// El cálculo lo hace ledger.BuildDashboard; aquí solo se consulta y se mapea.
type UseCase struct {
	invoices repository.InvoiceRepository
	revenues repository.RevenueRepository
	debts    repository.DebtRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(invoices repository.InvoiceRepository, revenues repository.RevenueRepository, debts repository.DebtRepository) *UseCase {
	return &UseCase{invoices: invoices, revenues: revenues, debts: debts}
}

// Get calcula el dashboard del usuario para la selección.
//
// Tres consultas en paralelo:
//  1. notas validadas desde el origen hasta el fin del período
//  2. deudas del mismo rango
//  3. todos los pagos (el emparejamiento por mes de referencia se hace en memoria)
func (uc *UseCase) Get(ctx context.Context, userID string, sel period.Selection) (*dto.DashboardDTO, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	span := ledger.FetchRange(sel)
	validated := true

	var (
		invoices []*entity.Invoice
		debts    []*entity.Debt
		revenues []*entity.Revenue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = uc.invoices.List(gctx, repository.InvoiceFilter{
			UserID: userID, From: span.Start, To: span.End, Validated: &validated,
		})
		return err
	})
	g.Go(func() error {
		var err error
		debts, err = uc.debts.ListByDate(gctx, userID, span.Start, span.End)
		return err
	})
	g.Go(func() error {
		var err error
		revenues, err = uc.revenues.ListAll(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d := ledger.BuildDashboard(ledger.DashboardInput{
		Selection: sel,
		Invoices:  invoices,
		Debts:     debts,
		Revenues:  revenues,
	})
	return toDTO(d), nil
}

func toDTO(d ledger.Dashboard) *dto.DashboardDTO {
	prev := d.Windows.PreviousMonth.Start
	out := &dto.DashboardDTO{
		Mode:                 string(d.Selection.Mode),
		PeriodKey:            d.Selection.Key(),
		PeriodLabel:          d.Selection.Label(),
		PeriodStart:          d.Windows.Current.Start.Format(dateLayout),
		PeriodEnd:            d.Windows.Current.End.Format(dateLayout),
		TotalValue:           d.TotalValue,
		InvoiceCount:         d.InvoiceCount,
		ManualEntryCount:     d.ManualEntryCount,
		MonthlyRevenue:       d.MonthlyRevenue,
		ProjectedEarnings:    d.ProjectedEarnings,
		CorteCoseDebt:        d.CorteCoseDebt,
		BalanceReceivable:    d.BalanceReceivable,
		PreviousMonthBalance: d.PreviousMonthBalance,
		PreviousMonthLabel:   fmt.Sprintf("%s %d", period.MonthName(prev.Month()), prev.Year()),
		Chart:                make([]dto.ChartPointDTO, 0, len(d.Chart)),
	}
	for _, b := range d.Chart {
		out.Chart = append(out.Chart, dto.ChartPointDTO{
			Label: b.Label,
			Start: b.Range.Start.Format(dateLayout),
			End:   b.Range.End.Format(dateLayout),
			Value: b.Value,
		})
	}
	return out
}
