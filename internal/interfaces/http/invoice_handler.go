package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
)

// InvoiceHandler maneja las notas fiscales (protegido).
type InvoiceHandler struct {
	uc  *records.InvoiceUseCase
	log zerolog.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *records.InvoiceUseCase, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar nota manual
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "delivery_date (YYYY-MM-DD), total_value, items"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateManual(c.Context(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Scan godoc
// @Summary      Escanear nota con IA
// @Description  Sube la foto (multipart, campo image). La nota se crea sin validar.
// @Tags         invoices
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "foto de la nota"
// @Success      201    {object}  dto.ScanInvoiceResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/invoices/scan [post]
func (h *InvoiceHandler) Scan(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "VALIDATION", "campo image requerido")
	}
	if fh.Size > records.MaxScanBytes {
		return badRequest(c, "VALIDATION", fmt.Sprintf("imagen mayor de %d MB", records.MaxScanBytes>>20))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("abrir imagen: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, records.MaxScanBytes+1))
	if err != nil {
		return writeError(c, h.log, fmt.Errorf("leer imagen: %w", err))
	}

	out, err := h.uc.Scan(c.Context(), userID, data)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List notas del intervalo (por defecto el mes en curso).
// GET /api/invoices?from=YYYY-MM-DD&to=YYYY-MM-DD&validated=true|false
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var q dto.ListInvoicesRequest
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "VALIDATION", "parámetros inválidos")
	}
	out, err := h.uc.List(c.Context(), userID, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID detalle con URL firmada de la imagen.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetValidated marca o desmarca la nota como validada.
// PATCH /api/invoices/:id/validation
func (h *InvoiceHandler) SetValidated(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.SetValidatedRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SetValidated(c.Context(), userID, c.Params("id"), in.IsValidated)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete borra la nota y su imagen.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
