package records_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/testutil"
	"github.com/jhoicas/gestor-notas-api/pkg/logger"
)

const userID = "user-1"

var now = time.Date(2024, time.March, 20, 15, 4, 5, 0, time.UTC)

func strPtr(s string) *string { return &s }

type invoiceFixture struct {
	repo      *testutil.MockInvoiceRepository
	storage   *testutil.MockImageStorage
	extractor *testutil.MockExtractor
	uc        *records.InvoiceUseCase
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		repo:      testutil.NewMockInvoiceRepository(),
		storage:   testutil.NewMockImageStorage(),
		extractor: &testutil.MockExtractor{},
	}
	f.uc = records.NewInvoiceUseCase(records.InvoiceDeps{
		Repo:       f.repo,
		Storage:    f.storage,
		Normalizer: testutil.PassthroughNormalizer{},
		Extractor:  f.extractor,
		Now:        func() time.Time { return now },
		Log:        logger.Nop().Zerolog(),
	})
	return f
}

func TestCreateManual(t *testing.T) {
	f := newInvoiceFixture()
	res, err := f.uc.CreateManual(context.Background(), userID, dto.CreateInvoiceRequest{
		InvoiceNumber: " NF-7 ",
		DeliveryDate:  "2024-03-15",
		TotalValue:    decimal.RequireFromString("80.00"),
		IsValidated:   true,
		Items: []dto.InvoiceItemRequest{
			{Description: "Bainha", Value: decimal.RequireFromString("30.00")},
			{Description: "Fecho", Value: decimal.RequireFromString("50.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, res.IsManualEntry)
	assert.True(t, res.IsValidated)
	assert.Equal(t, "NF-7", res.InvoiceNumber)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Items[1].Position)
	assert.Contains(t, f.repo.Invoices, res.ID)
}

func TestCreateManual_Validation(t *testing.T) {
	f := newInvoiceFixture()
	tests := map[string]dto.CreateInvoiceRequest{
		"sin fecha":       {TotalValue: decimal.NewFromInt(1)},
		"total negativo":  {DeliveryDate: "2024-03-01", TotalValue: decimal.NewFromInt(-1)},
		"ítem sin nombre": {DeliveryDate: "2024-03-01", Items: []dto.InvoiceItemRequest{{Description: " "}}},
	}
	for name, in := range tests {
		_, err := f.uc.CreateManual(context.Background(), userID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Empty(t, f.repo.Invoices)
}

func TestScan_StoresUnvalidatedInvoiceFromExtraction(t *testing.T) {
	f := newInvoiceFixture()
	f.extractor.Result = &dto.ExtractionDTO{
		InvoiceNumber: strPtr("A-123"),
		InvoiceDate:   strPtr("05/03/2024"),
		Items: []dto.ExtractedItemDTO{
			{Description: "Calça", Value: decimal.RequireFromString("12.50")},
			{Description: "", Value: decimal.RequireFromString("1")},
		},
		TotalValue:  decimal.RequireFromString("12.50"),
		PhoneNumber: strPtr("912000111"),
	}

	res, err := f.uc.Scan(context.Background(), userID, []byte("jpeg-bytes"))
	require.NoError(t, err)

	inv := res.Invoice
	assert.False(t, inv.IsValidated)
	assert.False(t, inv.IsManualEntry)
	assert.Equal(t, "A-123", inv.InvoiceNumber)
	assert.Equal(t, "2024-03-05", inv.DeliveryDate)
	assert.Equal(t, "912000111", inv.PhoneNumber)
	require.Len(t, inv.Items, 1, "los ítems sin descripción se descartan")
	assert.Contains(t, f.storage.Objects, inv.ImageRef)
	assert.Equal(t, "https://storage.test/"+inv.ImageRef+"?sig=x", f.extractor.LastURL)
	assert.False(t, res.Extraction.Defaulted)
}

func TestScan_DefaultedExtractionStillCreatesInvoice(t *testing.T) {
	f := newInvoiceFixture()

	res, err := f.uc.Scan(context.Background(), userID, []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, res.Extraction.Defaulted)
	assert.Equal(t, "2024-03-20", res.Invoice.DeliveryDate, "sin fecha se usa hoy")
	assert.True(t, res.Invoice.TotalValue.IsZero())
	assert.Empty(t, res.Invoice.Items)
	assert.Len(t, f.repo.Invoices, 1)
}

func TestScan_Errors(t *testing.T) {
	f := newInvoiceFixture()
	_, err := f.uc.Scan(context.Background(), userID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.repo.Err = errors.New("db caída")
	_, err = f.uc.Scan(context.Background(), userID, []byte("x"))
	assert.Error(t, err)
	assert.Empty(t, f.storage.Objects, "la imagen se descarta si no se guarda la nota")

	disabled := records.NewInvoiceUseCase(records.InvoiceDeps{Repo: f.repo, Log: logger.Nop().Zerolog()})
	_, err = disabled.Scan(context.Background(), userID, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
}

func TestListValidateDelete(t *testing.T) {
	f := newInvoiceFixture()
	res, err := f.uc.Scan(context.Background(), userID, []byte("jpeg-bytes"))
	require.NoError(t, err)
	id := res.Invoice.ID

	onlyValidated, err := f.uc.List(context.Background(), userID, dto.ListInvoicesRequest{Validated: "true"})
	require.NoError(t, err)
	assert.Zero(t, onlyValidated.Total)

	got, err := f.uc.SetValidated(context.Background(), userID, id, true)
	require.NoError(t, err)
	assert.True(t, got.IsValidated)
	assert.NotEmpty(t, got.ImageURL)

	onlyValidated, err = f.uc.List(context.Background(), userID, dto.ListInvoicesRequest{From: "2024-03-01", To: "2024-03-31", Validated: "true"})
	require.NoError(t, err)
	assert.Equal(t, 1, onlyValidated.Total)

	_, err = f.uc.List(context.Background(), userID, dto.ListInvoicesRequest{Validated: "maybe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.uc.Delete(context.Background(), userID, id))
	assert.Empty(t, f.repo.Invoices)
	assert.Empty(t, f.storage.Objects)

	assert.ErrorIs(t, f.uc.Delete(context.Background(), userID, id), domain.ErrNotFound)
	_, err = f.uc.Get(context.Background(), userID, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.SetValidated(context.Background(), "other", uuid.New().String(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevenueUseCase(t *testing.T) {
	repo := testutil.NewMockRevenueRepository()
	uc := records.NewRevenueUseCase(repo, func() time.Time { return now })
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, dto.RevenueRequest{
		RevenueDate: "2024-04-01", Amount: decimal.RequireFromString("300"), ReferenceMonth: "2024-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", created.ReferenceMonth)

	_, err = uc.Create(ctx, userID, dto.RevenueRequest{RevenueDate: "2024-04-01", Amount: decimal.NewFromInt(1), ReferenceMonth: "03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, userID, dto.RevenueRequest{RevenueDate: "2024-04-01", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.Update(ctx, userID, created.ID, dto.RevenueRequest{RevenueDate: "2024-04-02", Amount: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.Empty(t, updated.ReferenceMonth)

	list, err := uc.List(ctx, userID, dto.DateRangeQuery{From: "2024-04-01", To: "2024-04-30"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "250", list[0].Amount.String())

	_, err = uc.Update(ctx, "other", created.ID, dto.RevenueRequest{RevenueDate: "2024-04-02", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, userID, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, userID, created.ID), domain.ErrNotFound)
}

func TestDebtUseCase(t *testing.T) {
	repo := testutil.NewMockDebtRepository()
	uc := records.NewDebtUseCase(repo, func() time.Time { return now })
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, dto.DebtRequest{DebtDate: "2024-03-10", Amount: decimal.NewFromInt(40), Description: "Corte"})
	require.NoError(t, err)

	list, err := uc.List(ctx, userID, dto.DateRangeQuery{})
	require.NoError(t, err, "sin fechas se usa el mes actual")
	require.Len(t, list, 1)

	_, err = uc.Update(ctx, userID, created.ID, dto.DebtRequest{DebtDate: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, userID, dto.DateRangeQuery{From: "2024-03-10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, userID, created.ID))
	assert.Empty(t, repo.Debts)
}
