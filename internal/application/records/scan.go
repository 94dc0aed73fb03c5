package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	"github.com/jhoicas/gestor-notas-api/internal/domain/entity"
)

// MaxScanBytes tamaño máximo aceptado para la foto original.
const MaxScanBytes = 10 << 20

// Scan procesa la foto de una nota:
//  1. normaliza (reescala y recodifica a JPEG)
//  2. la sube al almacenamiento
//  3. firma una URL temporal y la envía al extractor
//  4. guarda la nota sin validar con lo extraído
//
// La extracción nunca falla: si el modelo no responde se guarda la carga por defecto y
// extraction.defaulted = true para que el usuario la complete a mano.
func (uc *InvoiceUseCase) Scan(ctx context.Context, userID string, image []byte) (*dto.ScanInvoiceResponse, error) {
	if uc.storage == nil || uc.extractor == nil {
		return nil, domain.ErrStorageDisabled
	}
	if len(image) == 0 || len(image) > MaxScanBytes {
		return nil, fmt.Errorf("%w: imagen vacía o mayor de %d bytes", domain.ErrInvalidInput, MaxScanBytes)
	}

	body, contentType := image, "image/jpeg"
	if uc.normalizer != nil {
		var err error
		if body, contentType, err = uc.normalizer.Normalize(image); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	id := uuid.New().String()
	key := fmt.Sprintf("users/%s/invoices/%s.jpg", userID, id)
	if err := uc.storage.Put(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	url, err := uc.storage.PresignGet(ctx, key)
	if err != nil {
		uc.discardImage(ctx, key)
		return nil, fmt.Errorf("firmar imagen: %w", err)
	}

	ext := uc.extractor.Extract(ctx, url)
	if ext.Defaulted {
		uc.log.Warn().Str("invoice_id", id).Msg("extracción por defecto; la nota requiere revisión manual")
	}

	inv := fromExtraction(id, userID, key, ext, uc.now().UTC())
	if err := uc.repo.Create(ctx, inv); err != nil {
		uc.discardImage(ctx, key)
		return nil, fmt.Errorf("crear nota escaneada: %w", err)
	}
	uc.log.Info().Str("invoice_id", id).Int("items", len(inv.Items)).Bool("defaulted", ext.Defaulted).Msg("nota escaneada")

	return &dto.ScanInvoiceResponse{Invoice: *toInvoiceResponse(inv, url), Extraction: ext}, nil
}

func (uc *InvoiceUseCase) discardImage(ctx context.Context, key string) {
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("image_ref", key).Msg("no se pudo borrar la imagen")
	}
}

// fromExtraction nota sin validar a partir de la extracción. Sin fecha legible se usa
// la fecha de hoy.
func fromExtraction(id, userID, key string, ext dto.ExtractionDTO, now time.Time) *entity.Invoice {
	inv := &entity.Invoice{
		ID:            id,
		UserID:        userID,
		DeliveryDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalValue:    ext.TotalValue,
		IsValidated:   false,
		IsManualEntry: false,
		ImageRef:      key,
		CreatedAt:     now,
	}
	if ext.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*ext.InvoiceNumber)
	}
	if ext.ContactName != nil {
		inv.ContactName = strings.TrimSpace(*ext.ContactName)
	}
	if ext.PhoneNumber != nil {
		inv.PhoneNumber = strings.TrimSpace(*ext.PhoneNumber)
	}
	if ext.InvoiceDate != nil {
		if d, ok := parseExtractedDate(*ext.InvoiceDate); ok {
			inv.DeliveryDate = d
		}
	}
	pos := 0
	for _, it := range ext.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			continue
		}
		pos++
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   id,
			Position:    pos,
			Description: desc,
			Value:       it.Value,
		})
	}
	return inv
}

// parseExtractedDate el modelo devuelve DD/MM/YYYY; se acepta también YYYY-MM-DD.
func parseExtractedDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006", "2/1/2006", dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
