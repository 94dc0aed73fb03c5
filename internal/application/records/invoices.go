// Package records contiene los casos de uso de notas fiscais, pagos y deudas
// (alta, consulta, validación y borrado), incluido el escaneo con IA.
package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
	"github.com/jhoicas/gestor-notas-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase casos de uso de notas fiscais.
type InvoiceUseCase struct {
	repo       repository.InvoiceRepository
	storage    ports.ImageStorage // nil = escaneo deshabilitado
	normalizer ports.ImageNormalizer
	extractor  ports.InvoiceExtractor
	now        func() time.Time
	log        zerolog.Logger
}

// InvoiceDeps dependencias de InvoiceUseCase.
type InvoiceDeps struct {
	Repo       repository.InvoiceRepository
	Storage    ports.ImageStorage
	Normalizer ports.ImageNormalizer
	Extractor  ports.InvoiceExtractor
	Now        func() time.Time
	Log        zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(d InvoiceDeps) *InvoiceUseCase {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &InvoiceUseCase{
		repo:       d.Repo,
		storage:    d.Storage,
		normalizer: d.Normalizer,
		extractor:  d.Extractor,
		now:        d.Now,
		log:        d.Log,
	}
}

// CreateManual registra una nota introducida a mano (is_manual_entry = true).
func (uc *InvoiceUseCase) CreateManual(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	date, err := period.ParseDate(in.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.TotalValue.IsNegative() {
		return nil, fmt.Errorf("%w: total_value no puede ser negativo", domain.ErrInvalidInput)
	}
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		UserID:        userID,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		DeliveryDate:  date,
		TotalValue:    in.TotalValue,
		IsValidated:   in.IsValidated,
		IsManualEntry: true,
		ContactName:   strings.TrimSpace(in.ContactName),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		CreatedAt:     uc.now().UTC(),
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" {
			return nil, fmt.Errorf("%w: el ítem %d no tiene descripción", domain.ErrInvalidInput, i+1)
		}
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Position:    i + 1,
			Description: strings.TrimSpace(it.Description),
			Value:       it.Value,
		})
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("crear nota: %w", err)
	}
	return toInvoiceResponse(inv, ""), nil
}

// List notas del usuario con delivery_date en el rango. Sin fechas se usa el mes actual.
// validated: "true", "false" o "" (todas).
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, in dto.ListInvoicesRequest) (*dto.InvoiceListResponse, error) {
	r, err := rangeOrCurrentMonth(dto.DateRangeQuery{From: in.From, To: in.To}, uc.now)
	if err != nil {
		return nil, err
	}
	f := repository.InvoiceFilter{UserID: userID, From: r.Start, To: r.End, WithItems: true}
	switch in.Validated {
	case "":
	case "true", "false":
		v := in.Validated == "true"
		f.Validated = &v
	default:
		return nil, fmt.Errorf("%w: validated debe ser true o false", domain.ErrInvalidInput)
	}

	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, ""))
	}
	return &dto.InvoiceListResponse{Items: items, Total: len(items)}, nil
}

// Get devuelve la nota con una URL firmada de la imagen, si la hay.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	var url string
	if inv.ImageRef != "" && uc.storage != nil {
		if url, err = uc.storage.PresignGet(ctx, inv.ImageRef); err != nil {
			uc.log.Warn().Err(err).Str("invoice_id", id).Msg("no se pudo firmar la URL de la imagen")
			url = ""
		}
	}
	return toInvoiceResponse(inv, url), nil
}

// SetValidated marca o desmarca la nota como validada (la única mutación permitida).
func (uc *InvoiceUseCase) SetValidated(ctx context.Context, userID, id string, validated bool) (*dto.InvoiceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetValidated(ctx, userID, id, validated); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID, id)
}

// Delete borra la nota y sus ítems; la imagen se borra en modo best effort.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	inv, err := uc.find(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if inv.ImageRef != "" && uc.storage != nil {
		if err := uc.storage.Delete(ctx, inv.ImageRef); err != nil {
			uc.log.Warn().Err(err).Str("image_ref", inv.ImageRef).Msg("imagen huérfana tras borrar la nota")
		}
	}
	return nil
}

func (uc *InvoiceUseCase) find(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func toInvoiceResponse(inv *entity.Invoice, imageURL string) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		DeliveryDate:  inv.DeliveryDate.Format(dateLayout),
		TotalValue:    inv.TotalValue,
		IsValidated:   inv.IsValidated,
		IsManualEntry: inv.IsManualEntry,
		ContactName:   inv.ContactName,
		PhoneNumber:   inv.PhoneNumber,
		ImageRef:      inv.ImageRef,
		ImageURL:      imageURL,
		Items:         make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Description: it.Description,
			Value:       it.Value,
		})
	}
	return out
}
