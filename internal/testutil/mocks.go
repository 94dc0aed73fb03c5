// Package testutil repositorios y adaptadores en memoria para los tests de aplicación
// y de HTTP.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
	"github.com/jhoicas/gestor-notas-api/internal/domain/report"
)

func inRange(t, from, to time.Time) bool {
	return period.Range{Start: from, End: to}.Contains(t)
}

// MockInvoiceRepository implementación en memoria de repository.InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	Invoices map[string]*entity.Invoice
	Err      error // si no es nil, todas las operaciones fallan con él
	Calls    int
}

// NewMockInvoiceRepository crea el repositorio vacío.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{Invoices: make(map[string]*entity.Invoice)}
}

// Add inserta una nota (helper de tests); asigna ID si falta.
func (m *MockInvoiceRepository) Add(inv *entity.Invoice) *entity.Invoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	m.Invoices[inv.ID] = inv
	return inv
}

func (m *MockInvoiceRepository) Create(_ context.Context, inv *entity.Invoice) error {
	if m.Err != nil {
		return m.Err
	}
	m.Add(inv)
	return nil
}

func (m *MockInvoiceRepository) GetByID(_ context.Context, userID, id string) (*entity.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if inv, ok := m.Invoices[id]; ok && inv.UserID == userID {
		return inv, nil
	}
	return nil, nil
}

func (m *MockInvoiceRepository) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*entity.Invoice{}
	for _, inv := range m.Invoices {
		if inv.UserID != f.UserID || !inRange(inv.DeliveryDate, f.From, f.To) {
			continue
		}
		if f.Validated != nil && inv.IsValidated != *f.Validated {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryDate.After(out[j].DeliveryDate) })
	return out, nil
}

func (m *MockInvoiceRepository) SetValidated(_ context.Context, userID, id string, validated bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	inv.IsValidated = validated
	return nil
}

func (m *MockInvoiceRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.Invoices, id)
	return nil
}

// MockRevenueRepository implementación en memoria de repository.RevenueRepository.
type MockRevenueRepository struct {
	mu       sync.RWMutex
	Revenues map[string]*entity.Revenue
	Err      error
}

// NewMockRevenueRepository crea el repositorio vacío.
func NewMockRevenueRepository() *MockRevenueRepository {
	return &MockRevenueRepository{Revenues: make(map[string]*entity.Revenue)}
}

// Add inserta un pago (helper de tests).
func (m *MockRevenueRepository) Add(r *entity.Revenue) *entity.Revenue {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	m.Revenues[r.ID] = r
	return r
}

func (m *MockRevenueRepository) Create(_ context.Context, r *entity.Revenue) error {
	if m.Err != nil {
		return m.Err
	}
	m.Add(r)
	return nil
}

func (m *MockRevenueRepository) Update(_ context.Context, r *entity.Revenue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cur, ok := m.Revenues[r.ID]
	if !ok || cur.UserID != r.UserID {
		return domain.ErrNotFound
	}
	m.Revenues[r.ID] = r
	return nil
}

func (m *MockRevenueRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cur, ok := m.Revenues[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.Revenues, id)
	return nil
}

func (m *MockRevenueRepository) GetByID(_ context.Context, userID, id string) (*entity.Revenue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.Revenues[id]; ok && r.UserID == userID {
		return r, nil
	}
	return nil, nil
}

func (m *MockRevenueRepository) ListByDate(_ context.Context, userID string, from, to time.Time) ([]*entity.Revenue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*entity.Revenue{}
	for _, r := range m.Revenues {
		if r.UserID == userID && inRange(r.RevenueDate, from, to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevenueDate.Before(out[j].RevenueDate) })
	return out, nil
}

func (m *MockRevenueRepository) ListAll(_ context.Context, userID string) ([]*entity.Revenue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*entity.Revenue{}
	for _, r := range m.Revenues {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevenueDate.Before(out[j].RevenueDate) })
	return out, nil
}

// MockDebtRepository implementación en memoria de repository.DebtRepository.
type MockDebtRepository struct {
	mu    sync.RWMutex
	Debts map[string]*entity.Debt
	Err   error
}

// NewMockDebtRepository crea el repositorio vacío.
func NewMockDebtRepository() *MockDebtRepository {
	return &MockDebtRepository{Debts: make(map[string]*entity.Debt)}
}

// Add inserta una deuda (helper de tests).
func (m *MockDebtRepository) Add(d *entity.Debt) *entity.Debt {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	m.Debts[d.ID] = d
	return d
}

func (m *MockDebtRepository) Create(_ context.Context, d *entity.Debt) error {
	if m.Err != nil {
		return m.Err
	}
	m.Add(d)
	return nil
}

func (m *MockDebtRepository) Update(_ context.Context, d *entity.Debt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cur, ok := m.Debts[d.ID]
	if !ok || cur.UserID != d.UserID {
		return domain.ErrNotFound
	}
	m.Debts[d.ID] = d
	return nil
}

func (m *MockDebtRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cur, ok := m.Debts[id]
	if !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.Debts, id)
	return nil
}

func (m *MockDebtRepository) GetByID(_ context.Context, userID, id string) (*entity.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if d, ok := m.Debts[id]; ok && d.UserID == userID {
		return d, nil
	}
	return nil, nil
}

func (m *MockDebtRepository) ListByDate(_ context.Context, userID string, from, to time.Time) ([]*entity.Debt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*entity.Debt{}
	for _, d := range m.Debts {
		if d.UserID == userID && inRange(d.DebtDate, from, to) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DebtDate.Before(out[j].DebtDate) })
	return out, nil
}

// MockSharedReportRepository implementación en memoria de repository.SharedReportRepository.
type MockSharedReportRepository struct {
	mu      sync.RWMutex
	Reports map[string]*entity.SharedReport
	Err     error
}

// NewMockSharedReportRepository crea el repositorio vacío.
func NewMockSharedReportRepository() *MockSharedReportRepository {
	return &MockSharedReportRepository{Reports: make(map[string]*entity.SharedReport)}
}

func (m *MockSharedReportRepository) Create(_ context.Context, r *entity.SharedReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	m.Reports[r.ID] = r
	return nil
}

func (m *MockSharedReportRepository) GetByID(_ context.Context, id string) (*entity.SharedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.Reports[id]; ok {
		return r, nil
	}
	return nil, nil
}

func (m *MockSharedReportRepository) ListByUser(_ context.Context, userID string) ([]*entity.SharedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*entity.SharedReport{}
	for _, r := range m.Reports {
		if r.UserID == userID {
			cp := *r
			cp.ReportData = nil
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockSharedReportRepository) UpdateExpiry(_ context.Context, userID, id string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	r, ok := m.Reports[id]
	if !ok || r.UserID != userID {
		return domain.ErrNotFound
	}
	r.ExpiresAt = &expiresAt
	return nil
}

func (m *MockSharedReportRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if r, ok := m.Reports[id]; ok && r.UserID == userID {
		delete(m.Reports, id)
	}
	return nil
}

// MockExtractor extractor fijo: devuelve Result (o la carga por defecto si es nil).
type MockExtractor struct {
	Result   *dto.ExtractionDTO
	LastURL  string
	CallsNum int
}

func (m *MockExtractor) Extract(_ context.Context, imageURL string) dto.ExtractionDTO {
	m.LastURL = imageURL
	m.CallsNum++
	if m.Result == nil {
		return dto.DefaultExtraction()
	}
	return *m.Result
}

// MockImageStorage almacenamiento en memoria.
type MockImageStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutErr  error
}

// NewMockImageStorage crea el almacenamiento vacío.
func NewMockImageStorage() *MockImageStorage {
	return &MockImageStorage{Objects: make(map[string][]byte)}
}

func (m *MockImageStorage) Put(_ context.Context, key, _ string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Objects[key] = body
	return nil
}

func (m *MockImageStorage) PresignGet(_ context.Context, key string) (string, error) {
	return "https://storage.test/" + key + "?sig=x", nil
}

func (m *MockImageStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

// PassthroughNormalizer no modifica la imagen.
type PassthroughNormalizer struct{}

func (PassthroughNormalizer) Normalize(data []byte) ([]byte, string, error) {
	return data, "image/jpeg", nil
}

// MockPDFRenderer devuelve un PDF falso con el título del informe.
type MockPDFRenderer struct {
	Last *report.Report
}

func (m *MockPDFRenderer) Render(r *report.Report) ([]byte, error) {
	m.Last = r
	return []byte("%PDF-1.4 " + r.Title), nil
}

// FixedClock reloj controlable para los tests.
type FixedClock struct {
	mu  sync.Mutex
	Now time.Time
}

// Time devuelve el instante actual del reloj.
func (c *FixedClock) Time() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Now
}

// Advance mueve el reloj hacia delante.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Now = c.Now.Add(d)
}
