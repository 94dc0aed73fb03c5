package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
)

// RevenueUseCase CRUD de pagos recibidos.
type RevenueUseCase struct {
	repo repository.RevenueRepository
	now  func() time.Time
}

// NewRevenueUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewRevenueUseCase(repo repository.RevenueRepository, now func() time.Time) *RevenueUseCase {
	if now == nil {
		now = time.Now
	}
	return &RevenueUseCase{repo: repo, now: now}
}

// Create registra un pago.
func (uc *RevenueUseCase) Create(ctx context.Context, userID string, in dto.RevenueRequest) (*dto.RevenueResponse, error) {
	rev := &entity.Revenue{ID: uuid.New().String(), UserID: userID, CreatedAt: uc.now().UTC()}
	if err := applyRevenue(rev, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, rev); err != nil {
		return nil, fmt.Errorf("crear pago: %w", err)
	}
	return toRevenueResponse(rev), nil
}

// Update reemplaza los campos editables de un pago.
func (uc *RevenueUseCase) Update(ctx context.Context, userID, id string, in dto.RevenueRequest) (*dto.RevenueResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	rev, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyRevenue(rev, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, rev); err != nil {
		return nil, err
	}
	return toRevenueResponse(rev), nil
}

// Delete borra un pago.
func (uc *RevenueUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, userID, id)
}

// List pagos con revenue_date dentro del rango.
func (uc *RevenueUseCase) List(ctx context.Context, userID string, q dto.DateRangeQuery) ([]dto.RevenueResponse, error) {
	r, err := rangeOrCurrentMonth(q, uc.now)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByDate(ctx, userID, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	out := make([]dto.RevenueResponse, 0, len(list))
	for _, rev := range list {
		out = append(out, *toRevenueResponse(rev))
	}
	return out, nil
}

func applyRevenue(rev *entity.Revenue, in dto.RevenueRequest) error {
	date, amount, err := parseEntry(in.RevenueDate, in.Amount)
	if err != nil {
		return err
	}
	ref := strings.TrimSpace(in.ReferenceMonth)
	if ref != "" {
		if _, err := period.ParseMonthKey(ref); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	rev.RevenueDate = date
	rev.Amount = amount
	rev.Description = strings.TrimSpace(in.Description)
	rev.ReferenceMonth = ref
	return nil
}

func toRevenueResponse(r *entity.Revenue) *dto.RevenueResponse {
	return &dto.RevenueResponse{
		ID:             r.ID,
		RevenueDate:    r.RevenueDate.Format(dateLayout),
		Amount:         r.Amount,
		Description:    r.Description,
		ReferenceMonth: r.ReferenceMonth,
		CreatedAt:      r.CreatedAt,
	}
}

// DebtUseCase CRUD de deudas Corte & Cose.
type DebtUseCase struct {
	repo repository.DebtRepository
	now  func() time.Time
}

// NewDebtUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewDebtUseCase(repo repository.DebtRepository, now func() time.Time) *DebtUseCase {
	if now == nil {
		now = time.Now
	}
	return &DebtUseCase{repo: repo, now: now}
}

// Create registra una deuda.
func (uc *DebtUseCase) Create(ctx context.Context, userID string, in dto.DebtRequest) (*dto.DebtResponse, error) {
	date, amount, err := parseEntry(in.DebtDate, in.Amount)
	if err != nil {
		return nil, err
	}
	d := &entity.Debt{
		ID:          uuid.New().String(),
		UserID:      userID,
		DebtDate:    date,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("crear deuda: %w", err)
	}
	return toDebtResponse(d), nil
}

// Update reemplaza los campos editables de una deuda.
func (uc *DebtUseCase) Update(ctx context.Context, userID, id string, in dto.DebtRequest) (*dto.DebtResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	d, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	date, amount, err := parseEntry(in.DebtDate, in.Amount)
	if err != nil {
		return nil, err
	}
	d.DebtDate, d.Amount, d.Description = date, amount, strings.TrimSpace(in.Description)
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDebtResponse(d), nil
}

// Delete borra una deuda.
func (uc *DebtUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, userID, id)
}

// List deudas con debt_date dentro del rango.
func (uc *DebtUseCase) List(ctx context.Context, userID string, q dto.DateRangeQuery) ([]dto.DebtResponse, error) {
	r, err := rangeOrCurrentMonth(q, uc.now)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByDate(ctx, userID, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("listar deudas: %w", err)
	}
	out := make([]dto.DebtResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDebtResponse(d))
	}
	return out, nil
}

func toDebtResponse(d *entity.Debt) *dto.DebtResponse {
	return &dto.DebtResponse{
		ID:          d.ID,
		DebtDate:    d.DebtDate.Format(dateLayout),
		Amount:      d.Amount,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

// parseEntry fecha obligatoria e importe positivo.
func parseEntry(date string, amount decimal.Decimal) (time.Time, decimal.Decimal, error) {
	d, err := period.ParseDate(date)
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !amount.IsPositive() {
		return time.Time{}, decimal.Zero, fmt.Errorf("%w: el importe debe ser positivo", domain.ErrInvalidInput)
	}
	return d, amount, nil
}

func rangeOrCurrentMonth(q dto.DateRangeQuery, now func() time.Time) (period.Range, error) {
	if q.From == "" && q.To == "" {
		t := now().UTC()
		return period.MonthRange(t.Year(), t.Month()), nil
	}
	r, err := period.ParseRange(q.From, q.To)
	if err != nil {
		return period.Range{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return r, nil
}
