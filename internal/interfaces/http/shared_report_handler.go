package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	appreport "github.com/jhoicas/gestor-notas-api/internal/application/report"
	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
)

// SharedReportHandler gestión de los enlaces del usuario (protegido).
type SharedReportHandler struct {
	sharing *sharing.UseCase
	reports *appreport.UseCase
	log     zerolog.Logger
}

func NewSharedReportHandler(sharing *sharing.UseCase, reports *appreport.UseCase, log zerolog.Logger) *SharedReportHandler {
	return &SharedReportHandler{sharing: sharing, reports: reports, log: log}
}

// List GET /api/shared-reports
func (h *SharedReportHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.sharing.List(c.Context(), userID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Extend fija la expiración a hoy + days.
// PATCH /api/shared-reports/:id/extend
func (h *SharedReportHandler) Extend(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ExtendLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	expires, err := h.sharing.Extend(c.Context(), userID, c.Params("id"), in.Days)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "expires_at": expires})
}

// Delete DELETE /api/shared-reports/:id (idempotente)
func (h *SharedReportHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.sharing.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF vuelve a descargar la instantánea, aunque el enlace haya expirado.
// GET /api/shared-reports/:id/pdf
func (h *SharedReportHandler) PDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	r, err := h.sharing.OwnedSnapshot(c.Context(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	body, name, err := h.reports.RenderPDF(r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, body, name)
}
