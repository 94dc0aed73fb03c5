// Package report contiene el caso de uso de generación de informes (vista previa y PDF).
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
	domreport "github.com/jhoicas/gestor-notas-api/internal/domain/report"
	"github.com/jhoicas/gestor-notas-api/pkg/money"
)

// UseCase genera informes a partir del almacén. El informe se calcula una sola vez
// (domreport.Build) y después solo se formatea.
type UseCase struct {
	invoices repository.InvoiceRepository
	revenues repository.RevenueRepository
	debts    repository.DebtRepository
	pdf      ports.ReportPDFRenderer
	now      func() time.Time
}

// NewUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewUseCase(
	invoices repository.InvoiceRepository,
	revenues repository.RevenueRepository,
	debts repository.DebtRepository,
	pdf ports.ReportPDFRenderer,
	now func() time.Time,
) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{invoices: invoices, revenues: revenues, debts: debts, pdf: pdf, now: now}
}

// Request parámetros ya validados.
type Request struct {
	Type           domreport.Type
	Range          period.Range
	ReferenceMonth string
}

// ParseRequest valida la petición sin tocar el almacén.
func ParseRequest(in dto.ReportRequest) (Request, error) {
	typ, err := domreport.ParseType(in.Type)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if typ.ByMonth() {
		if in.ReferenceMonth == "" {
			return Request{}, fmt.Errorf("%w: selecione o mês e ano de referência", domain.ErrInvalidInput)
		}
		r, err := period.ParseMonthKey(in.ReferenceMonth)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return Request{Type: typ, Range: r, ReferenceMonth: in.ReferenceMonth}, nil
	}
	r, err := period.ParseRange(in.From, in.To)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return Request{Type: typ, Range: r}, nil
}

// Build valida, consulta y calcula el informe.
func (uc *UseCase) Build(ctx context.Context, userID string, in dto.ReportRequest) (*domreport.Report, error) {
	req, err := ParseRequest(in)
	if err != nil {
		return nil, err
	}

	var (
		invoices []*entity.Invoice
		revenues []*entity.Revenue
		debts    []*entity.Debt
	)
	validated := true
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = uc.invoices.List(gctx, repository.InvoiceFilter{
			UserID: userID, From: req.Range.Start, To: req.Range.End,
			Validated: &validated, WithItems: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		revenues, err = uc.revenues.ListAll(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		debts, err = uc.debts.ListByDate(gctx, userID, req.Range.Start, req.Range.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("informe %s: %w", req.Type, err)
	}

	return domreport.Build(domreport.Input{
		Type:           req.Type,
		Range:          req.Range,
		ReferenceMonth: req.ReferenceMonth,
		Invoices:       invoices,
		Revenues:       revenues,
		Debts:          debts,
		GeneratedAt:    uc.now().UTC(),
	})
}

// PDF genera el informe y lo renderiza. Devuelve el contenido y el nombre de archivo.
func (uc *UseCase) PDF(ctx context.Context, userID string, in dto.ReportRequest) ([]byte, string, error) {
	r, err := uc.Build(ctx, userID, in)
	if err != nil {
		return nil, "", err
	}
	return uc.RenderPDF(r)
}

// RenderPDF renderiza un informe ya calculado (también las instantáneas compartidas).
func (uc *UseCase) RenderPDF(r *domreport.Report) ([]byte, string, error) {
	body, err := uc.pdf.Render(r)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return body, FileName(r), nil
}

// FileName nombre del PDF: "relatorio_pagamentos_2024-03.pdf" para payments-by-month,
// el título normalizado para el resto.
func FileName(r *domreport.Report) string {
	if r.Type.ByMonth() {
		return "relatorio_pagamentos_" + r.ReferenceMonth + ".pdf"
	}
	return "relatorio_" + money.FileName(r.Title) + ".pdf"
}
