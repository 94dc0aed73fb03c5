// Package sharing gestiona los enlaces públicos de informes: instantáneas inmutables
// accesibles por su ID hasta que expiran o se borran.
//
// Estados: active → expired (paso del tiempo) | deleted (acción del dueño).
// expired vuelve a active solo con Extend; deleted es terminal.
package sharing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
	domreport "github.com/jhoicas/gestor-notas-api/internal/domain/report"
)

// DefaultExpiryDays validez de un enlace recién creado.
const DefaultExpiryDays = 30

// Config opciones del gestor de enlaces.
type Config struct {
	ExpiryDays int    // 0 = DefaultExpiryDays
	BaseURL    string // se compone {BaseURL}/report/{id}
}

// UseCase gestor de enlaces compartidos.
type UseCase struct {
	repo repository.SharedReportRepository
	cfg  Config
	now  func() time.Time
	log  zerolog.Logger
}

// NewUseCase construye el gestor. now puede ser nil (time.Now).
func NewUseCase(repo repository.SharedReportRepository, cfg Config, now func() time.Time, log zerolog.Logger) *UseCase {
	if cfg.ExpiryDays <= 0 {
		cfg.ExpiryDays = DefaultExpiryDays
	}
	if now == nil {
		now = time.Now
	}
	return &UseCase{repo: repo, cfg: cfg, now: now, log: log}
}

// Create guarda la instantánea del informe con expiración now + ExpiryDays.
func (uc *UseCase) Create(ctx context.Context, ownerID string, r *domreport.Report) (*dto.ShareReportResponse, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: informe vacío", domain.ErrInvalidInput)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("serializar informe: %w", err)
	}
	now := uc.now().UTC()
	expires := now.AddDate(0, 0, uc.cfg.ExpiryDays)
	link := &entity.SharedReport{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		ReportType:  string(r.Type),
		ReportTitle: r.Title,
		ReportData:  data,
		CreatedAt:   now,
		ExpiresAt:   &expires,
	}
	if err := uc.repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("crear enlace: %w", err)
	}
	uc.log.Info().Str("link_id", link.ID).Str("report_type", link.ReportType).Time("expires_at", expires).Msg("enlace compartido creado")
	return &dto.ShareReportResponse{
		ID:        link.ID,
		URL:       uc.URL(link.ID),
		Title:     link.ReportTitle,
		ExpiresAt: link.ExpiresAt,
	}, nil
}

// Resolve devuelve la instantánea. ErrNotFound si no existe (o el ID no es un UUID),
// ErrLinkExpired si expires_at ya pasó; junto con ErrLinkExpired se devuelve el enlace
// para que el cliente pueda mostrar título y fecha.
func (uc *UseCase) Resolve(ctx context.Context, id string) (*entity.SharedReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	link, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer enlace: %w", err)
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	if link.IsExpired(uc.now()) {
		return link, domain.ErrLinkExpired
	}
	return link, nil
}

// Snapshot decodifica el informe guardado.
func Snapshot(link *entity.SharedReport) (*domreport.Report, error) {
	var r domreport.Report
	if err := json.Unmarshal(link.ReportData, &r); err != nil {
		return nil, fmt.Errorf("instantánea %s corrupta: %w", link.ID, err)
	}
	return &r, nil
}

// Extend fija expires_at = now + days. No se suma a la expiración anterior.
func (uc *UseCase) Extend(ctx context.Context, ownerID, id string, days int) (time.Time, error) {
	if days < 1 {
		return time.Time{}, fmt.Errorf("%w: days debe ser >= 1", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return time.Time{}, domain.ErrNotFound
	}
	expires := uc.now().UTC().AddDate(0, 0, days)
	if err := uc.repo.UpdateExpiry(ctx, ownerID, id, expires); err != nil {
		return time.Time{}, err
	}
	uc.log.Info().Str("link_id", id).Int("days", days).Time("expires_at", expires).Msg("enlace extendido")
	return expires, nil
}

// Delete borra el enlace. Idempotente: borrar uno inexistente no es error.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("borrar enlace: %w", err)
	}
	return nil
}

// List enlaces del dueño con su estado calculado en este instante.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]dto.SharedReportDTO, error) {
	links, err := uc.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar enlaces: %w", err)
	}
	now := uc.now()
	out := make([]dto.SharedReportDTO, 0, len(links))
	for _, l := range links {
		out = append(out, dto.SharedReportDTO{
			ID:          l.ID,
			ReportType:  l.ReportType,
			ReportTitle: l.ReportTitle,
			URL:         uc.URL(l.ID),
			Status:      l.Status(now),
			CreatedAt:   l.CreatedAt,
			ExpiresAt:   l.ExpiresAt,
		})
	}
	return out, nil
}

// OwnedSnapshot instantánea de un enlace del usuario (para volver a descargar el PDF),
// aunque haya expirado.
func (uc *UseCase) OwnedSnapshot(ctx context.Context, ownerID, id string) (*domreport.Report, error) {
	link, err := uc.Resolve(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrLinkExpired) {
		return nil, err
	}
	if link.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	return Snapshot(link)
}

// URL enlace público de la instantánea.
func (uc *UseCase) URL(id string) string {
	return uc.cfg.BaseURL + "/report/" + id
}
