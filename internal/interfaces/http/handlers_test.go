package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas-api/internal/application/dashboard"
	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
	appreport "github.com/jhoicas/gestor-notas-api/internal/application/report"
	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/gestor-notas-api/internal/interfaces/http"
	"github.com/jhoicas/gestor-notas-api/internal/testutil"
	"github.com/jhoicas/gestor-notas-api/pkg/logger"
)

type apiFixture struct {
	app       *fiber.App
	clock     *testutil.FixedClock
	invoices  *testutil.MockInvoiceRepository
	revenues  *testutil.MockRevenueRepository
	debts     *testutil.MockDebtRepository
	links     *testutil.MockSharedReportRepository
	extractor *testutil.MockExtractor
	pdf       *testutil.MockPDFRenderer
	token     string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		clock:     &testutil.FixedClock{Now: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)},
		invoices:  testutil.NewMockInvoiceRepository(),
		revenues:  testutil.NewMockRevenueRepository(),
		debts:     testutil.NewMockDebtRepository(),
		links:     testutil.NewMockSharedReportRepository(),
		extractor: &testutil.MockExtractor{},
		pdf:       &testutil.MockPDFRenderer{},
	}
	log := logger.Nop().Zerolog()

	reportUC := appreport.NewUseCase(f.invoices, f.revenues, f.debts, f.pdf, f.clock.Time)
	sharingUC := sharing.NewUseCase(f.links, sharing.Config{ExpiryDays: 30, BaseURL: "https://notas.test"}, f.clock.Time, log)

	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		DashboardUC: dashboard.NewUseCase(f.invoices, f.revenues, f.debts),
		InvoiceUC: records.NewInvoiceUseCase(records.InvoiceDeps{
			Repo:       f.invoices,
			Storage:    testutil.NewMockImageStorage(),
			Normalizer: testutil.PassthroughNormalizer{},
			Extractor:  f.extractor,
			Now:        f.clock.Time,
			Log:        log,
		}),
		RevenueUC: records.NewRevenueUseCase(f.revenues, f.clock.Time),
		DebtUC:    records.NewDebtUseCase(f.debts, f.clock.Time),
		ReportUC:  reportUC,
		SharingUC: sharingUC,
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
		Now:       f.clock.Time,
		Log:       log,
	})
	f.token = bearer(t, testJWTSecret, testIssuer, testExpMin)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) public(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func (f *apiFixture) seedInvoice(date time.Time, value string, validated bool) *entity.Invoice {
	return f.invoices.Add(&entity.Invoice{
		UserID:        testUserID,
		InvoiceNumber: "NF-" + date.Format("0102"),
		DeliveryDate:  date,
		TotalValue:    decimal.RequireFromString(value),
		IsValidated:   validated,
		IsManualEntry: true,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_MonthStats(t *testing.T) {
	f := newAPIFixture(t)
	f.seedInvoice(day(2024, 3, 5), "1000", true)
	f.seedInvoice(day(2024, 3, 6), "500", false)

	resp := f.do(t, http.MethodGet, "/api/dashboard?mode=month&year=2024&month=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardDTO](t, resp)

	assert.Equal(t, "2024-03", out.PeriodKey)
	assert.Equal(t, "Março 2024", out.PeriodLabel)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(1000)), "solo cuentan las validadas")
	assert.True(t, out.ProjectedEarnings.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Fevereiro 2024", out.PreviousMonthLabel)
	assert.NotEmpty(t, out.Chart)
}

func TestDashboard_DefaultsToCurrentMonth(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, "month", out.Mode)
	assert.Equal(t, "2024-03", out.PeriodKey)
}

func TestDashboard_InvalidSelection(t *testing.T) {
	f := newAPIFixture(t)
	for _, q := range []string{"mode=week", "mode=month&month=12", "mode=month&month=-1", "month=abc", "year=20x4", "mode=year&year=dois"} {
		resp := f.do(t, http.MethodGet, "/api/dashboard?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		resp.Body.Close()
	}
}

func TestDashboard_RequiresToken(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.public(t, "/api/dashboard")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_CreateListValidateDelete(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/invoices", map[string]any{
		"invoice_number": "123",
		"delivery_date":  "2024-03-10",
		"total_value":    150.5,
		"contact_name":   "Ana",
		"items": []map[string]any{
			{"description": "Bainha", "value": 100},
			{"description": "Zíper", "value": 50.5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.InvoiceResponse](t, resp)
	assert.True(t, created.IsManualEntry)
	assert.False(t, created.IsValidated)
	require.Len(t, created.Items, 2)
	assert.Equal(t, 1, created.Items[0].Position)

	resp = f.do(t, http.MethodGet, "/api/invoices?from=2024-03-01&to=2024-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.InvoiceListResponse](t, resp)
	assert.Equal(t, 1, list.Total)

	resp = f.do(t, http.MethodPatch, "/api/invoices/"+created.ID+"/validation", map[string]any{"is_validated": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	validated := decode[dto.InvoiceResponse](t, resp)
	assert.True(t, validated.IsValidated)

	resp = f.do(t, http.MethodGet, "/api/invoices?from=2024-03-01&to=2024-03-31&validated=false", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[dto.InvoiceListResponse](t, resp).Total)

	resp = f.do(t, http.MethodDelete, "/api/invoices/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/invoices/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInvoices_CreateValidation(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/invoices", map[string]any{"delivery_date": "10/03/2024", "total_value": 10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInvoices_OtherUserIsNotFound(t *testing.T) {
	f := newAPIFixture(t)
	inv := f.invoices.Add(&entity.Invoice{
		UserID:       "00000000-0000-0000-0000-000000000099",
		DeliveryDate: day(2024, 3, 1),
		TotalValue:   decimal.NewFromInt(10),
	})
	resp := f.do(t, http.MethodGet, "/api/invoices/"+inv.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoices_Scan(t *testing.T) {
	f := newAPIFixture(t)
	number := "987"
	date := "2024-03-18"
	f.extractor.Result = &dto.ExtractionDTO{
		InvoiceNumber: &number,
		InvoiceDate:   &date,
		Items:         []dto.ExtractedItemDTO{{Description: "Ajuste", Value: decimal.NewFromInt(20)}},
		TotalValue:    decimal.NewFromInt(20),
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "nota.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/scan", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.ScanInvoiceResponse](t, resp)
	assert.Equal(t, "987", out.Invoice.InvoiceNumber)
	assert.Equal(t, "2024-03-18", out.Invoice.DeliveryDate)
	assert.False(t, out.Invoice.IsValidated, "las notas escaneadas se revisan antes de contar")
	assert.False(t, out.Invoice.IsManualEntry)
	assert.False(t, out.Extraction.Defaulted)
	assert.Equal(t, 1, f.extractor.CallsNum)
}

func TestInvoices_ScanWithoutFile(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/invoices/scan", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos y deudas
// ──────────────────────────────────────────────────────────────────────────────

func TestRevenues_CRUD(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/revenues", map[string]any{
		"revenue_date": "2024-03-15", "amount": 200, "reference_month": "2024-02",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rev := decode[dto.RevenueResponse](t, resp)
	assert.Equal(t, "2024-02", rev.ReferenceMonth)

	resp = f.do(t, http.MethodPut, "/api/revenues/"+rev.ID, map[string]any{
		"revenue_date": "2024-03-16", "amount": 250,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.RevenueResponse](t, resp)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(250)))

	resp = f.do(t, http.MethodGet, "/api/revenues?from=2024-03-01&to=2024-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.RevenueResponse](t, resp), 1)

	resp = f.do(t, http.MethodPost, "/api/revenues", map[string]any{
		"revenue_date": "2024-03-15", "amount": 10, "reference_month": "2024-13",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/revenues/"+rev.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDebts_CreateAndList(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/debts", map[string]any{"debt_date": "2024-03-02", "amount": 80})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/debts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.DebtResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-03-02", list[0].DebtDate)

	resp = f.do(t, http.MethodPut, "/api/debts/00000000-0000-0000-0000-0000000000aa", map[string]any{"debt_date": "2024-03-02", "amount": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes y enlaces compartidos
// ──────────────────────────────────────────────────────────────────────────────

var marchValueOnly = map[string]any{"type": "value-only", "from": "2024-03-01", "to": "2024-03-31"}

func TestReports_Preview(t *testing.T) {
	f := newAPIFixture(t)
	f.seedInvoice(day(2024, 3, 5), "100", true)

	resp := f.do(t, http.MethodPost, "/api/reports/preview", marchValueOnly)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[map[string]any](t, resp)
	assert.Equal(t, "value-only", out["type"])
	assert.Contains(t, out["title"], "01/03/2024")
}

func TestReports_PreviewValidation(t *testing.T) {
	f := newAPIFixture(t)
	cases := []map[string]any{
		{"type": "unknown", "from": "2024-03-01", "to": "2024-03-31"},
		{"type": "complete", "from": "2024-03-31", "to": "2024-03-01"},
		{"type": "payments-by-month"},
	}
	for _, body := range cases {
		resp := f.do(t, http.MethodPost, "/api/reports/preview", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		resp.Body.Close()
	}
}

func TestReports_PDF(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/reports/pdf", marchValueOnly)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
	require.NotNil(t, f.pdf.Last)
}

func TestSharedReport_Lifecycle(t *testing.T) {
	f := newAPIFixture(t)
	f.seedInvoice(day(2024, 3, 5), "100", true)

	resp := f.do(t, http.MethodPost, "/api/reports/share", marchValueOnly)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	share := decode[dto.ShareReportResponse](t, resp)
	assert.Equal(t, "https://notas.test/report/"+share.ID, share.URL)
	require.NotNil(t, share.ExpiresAt)
	assert.True(t, f.clock.Time().AddDate(0, 0, 30).Equal(*share.ExpiresAt))

	// público: JSON y página
	resp = f.public(t, "/api/public/reports/"+share.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pub := decode[dto.PublicReportDTO](t, resp)
	assert.Equal(t, "value-only", pub.ReportType)
	assert.NotEmpty(t, pub.Report)

	resp = f.public(t, "/report/"+share.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, readBody(t, resp), "Relatório de Notas Fiscais")

	// listado del dueño
	resp = f.do(t, http.MethodGet, "/api/shared-reports", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	links := decode[[]dto.SharedReportDTO](t, resp)
	require.Len(t, links, 1)
	assert.Equal(t, "active", links[0].Status)

	// expira
	f.clock.Advance(31 * 24 * time.Hour)
	resp = f.public(t, "/api/public/reports/"+share.ID)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
	assert.Equal(t, "LINK_EXPIRED", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.public(t, "/report/"+share.ID)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Link expirado")

	resp = f.do(t, http.MethodGet, "/api/shared-reports", nil)
	assert.Equal(t, "expired", decode[[]dto.SharedReportDTO](t, resp)[0].Status)

	// el dueño puede seguir descargando el PDF
	resp = f.do(t, http.MethodGet, "/api/shared-reports/"+share.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	// extender reactiva el enlace
	resp = f.do(t, http.MethodPatch, "/api/shared-reports/"+share.ID+"/extend", map[string]any{"days": 7})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = f.public(t, "/api/public/reports/"+share.ID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, "/api/shared-reports/"+share.ID+"/extend", map[string]any{"days": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// borrar es idempotente
	resp = f.do(t, http.MethodDelete, "/api/shared-reports/"+share.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = f.do(t, http.MethodDelete, "/api/shared-reports/"+share.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.public(t, "/report/"+share.ID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Relatório não encontrado")
}

func TestSharedReport_UnknownAndMalformedIDs(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.public(t, "/api/public/reports/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.public(t, "/api/public/reports/00000000-0000-0000-0000-0000000000ff")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, "/api/shared-reports/00000000-0000-0000-0000-0000000000ff/extend", map[string]any{"days": 3})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicRoutes_RateLimited(t *testing.T) {
	f := newAPIFixture(t)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SharingUC:     sharing.NewUseCase(f.links, sharing.Config{BaseURL: "https://notas.test"}, f.clock.Time, logger.Nop().Zerolog()),
		JWTSecret:     testJWTSecret,
		PublicLimiter: apphttp.NewRateLimiter(60, 1),
		Log:           logger.Nop().Zerolog(),
	})

	get := func() int {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/report/not-a-uuid", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusNotFound, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
}
