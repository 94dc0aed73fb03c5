package sharing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	domreport "github.com/jhoicas/gestor-notas-api/internal/domain/report"
	"github.com/jhoicas/gestor-notas-api/internal/testutil"
	"github.com/jhoicas/gestor-notas-api/pkg/logger"
)

const owner = "owner-1"

var t0 = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func newManager() (*sharing.UseCase, *testutil.MockSharedReportRepository, *testutil.FixedClock) {
	repo := testutil.NewMockSharedReportRepository()
	clock := &testutil.FixedClock{Now: t0}
	uc := sharing.NewUseCase(repo, sharing.Config{BaseURL: "https://notas.test"}, clock.Time, logger.Nop().Zerolog())
	return uc, repo, clock
}

func sampleReport(t *testing.T) *domreport.Report {
	t.Helper()
	r, err := domreport.Build(domreport.Input{
		Type:           domreport.TypePaymentsByMonth,
		Range:          period.MonthRange(2024, time.February),
		ReferenceMonth: "2024-02",
	})
	require.NoError(t, err)
	return r
}

func TestCreate_DefaultExpiryIsThirtyDays(t *testing.T) {
	uc, repo, _ := newManager()

	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	require.NotNil(t, res.ExpiresAt)
	assert.Equal(t, t0.AddDate(0, 0, 30), *res.ExpiresAt)
	assert.Equal(t, "https://notas.test/report/"+res.ID, res.URL)
	assert.Equal(t, "Pagamentos - Fevereiro 2024", res.Title)

	stored := repo.Reports[res.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "payments-by-month", stored.ReportType)
	assert.Equal(t, owner, stored.UserID)
}

func TestResolve_ExpiredIsDistinctFromNotFound(t *testing.T) {
	uc, _, clock := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	link, err := uc.Resolve(context.Background(), res.ID)
	require.NoError(t, err)
	snap, err := sharing.Snapshot(link)
	require.NoError(t, err)
	assert.Equal(t, "Pagamentos - Fevereiro 2024", snap.Title)

	clock.Advance(31 * 24 * time.Hour)
	link, err = uc.Resolve(context.Background(), res.ID)
	assert.ErrorIs(t, err, domain.ErrLinkExpired)
	require.NotNil(t, link)

	_, err = uc.Resolve(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Resolve(context.Background(), "no-es-un-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_NeverExpires(t *testing.T) {
	uc, repo, clock := newManager()
	id := uuid.New().String()
	repo.Reports[id] = &entity.SharedReport{ID: id, UserID: owner, ReportData: []byte(`{}`)}

	clock.Advance(10 * 365 * 24 * time.Hour)
	_, err := uc.Resolve(context.Background(), id)
	assert.NoError(t, err)
}

func TestExtend_IsAbsoluteFromNow(t *testing.T) {
	uc, repo, clock := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	clock.Advance(2 * 24 * time.Hour)
	now := clock.Time()
	expires, err := uc.Extend(context.Background(), owner, res.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, now.AddDate(0, 0, 7), expires, "no se suma a la expiración anterior")
	assert.Equal(t, expires, *repo.Reports[res.ID].ExpiresAt)
}

func TestExtend_ReactivatesExpiredLink(t *testing.T) {
	uc, _, clock := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	clock.Advance(40 * 24 * time.Hour)
	_, err = uc.Resolve(context.Background(), res.ID)
	require.ErrorIs(t, err, domain.ErrLinkExpired)

	_, err = uc.Extend(context.Background(), owner, res.ID, 1)
	require.NoError(t, err)
	_, err = uc.Resolve(context.Background(), res.ID)
	assert.NoError(t, err)
}

func TestExtend_Errors(t *testing.T) {
	uc, _, _ := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	_, err = uc.Extend(context.Background(), owner, res.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Extend(context.Background(), "intruso", res.ID, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Extend(context.Background(), owner, uuid.New().String(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_IsIdempotentAndTerminal(t *testing.T) {
	uc, _, _ := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), owner, res.ID))
	require.NoError(t, uc.Delete(context.Background(), owner, res.ID))
	require.NoError(t, uc.Delete(context.Background(), owner, "basura"))

	_, err = uc.Resolve(context.Background(), res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Extend(context.Background(), owner, res.ID, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_OtherOwnerCannotDelete(t *testing.T) {
	uc, repo, _ := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "intruso", res.ID))
	assert.Contains(t, repo.Reports, res.ID)
}

func TestList_ComputesStatus(t *testing.T) {
	uc, _, clock := newManager()
	old, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)
	clock.Advance(20 * 24 * time.Hour)
	fresh, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), "otro", sampleReport(t))
	require.NoError(t, err)

	clock.Advance(15 * 24 * time.Hour)
	links, err := uc.List(context.Background(), owner)
	require.NoError(t, err)

	require.Len(t, links, 2)
	assert.Equal(t, fresh.ID, links[0].ID)
	assert.Equal(t, entity.LinkStatusActive, links[0].Status)
	assert.Equal(t, old.ID, links[1].ID)
	assert.Equal(t, entity.LinkStatusExpired, links[1].Status)
}

func TestOwnedSnapshot(t *testing.T) {
	uc, _, clock := newManager()
	res, err := uc.Create(context.Background(), owner, sampleReport(t))
	require.NoError(t, err)
	clock.Advance(60 * 24 * time.Hour)

	snap, err := uc.OwnedSnapshot(context.Background(), owner, res.ID)
	require.NoError(t, err, "el dueño puede descargar aunque haya expirado")
	assert.Equal(t, domreport.TypePaymentsByMonth, snap.Type)

	_, err = uc.OwnedSnapshot(context.Background(), "intruso", res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
