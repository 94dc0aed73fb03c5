package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	appreport "github.com/jhoicas/gestor-notas-api/internal/application/report"
	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
)

// ReportHandler informes del usuario: vista previa, PDF y creación de enlace (protegido).
type ReportHandler struct {
	reports *appreport.UseCase
	sharing *sharing.UseCase
	log     zerolog.Logger
}

func NewReportHandler(reports *appreport.UseCase, sharing *sharing.UseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, sharing: sharing, log: log}
}

// Preview godoc
// @Summary      Vista previa del informe
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "type, from/to o reference_month"
// @Success      200   {object}  report.Report
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/preview [post]
func (h *ReportHandler) Preview(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	r, err := h.reports.Build(c.Context(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(r)
}

// PDF descarga el informe.
// POST /api/reports/pdf
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	body, name, err := h.reports.PDF(c.Context(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, body, name)
}

// Share godoc
// @Summary      Compartir informe
// @Description  Guarda una instantánea del informe y devuelve el enlace público.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "type, from/to o reference_month"
// @Success      201   {object}  dto.ShareReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/share [post]
func (h *ReportHandler) Share(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	r, err := h.reports.Build(c.Context(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.sharing.Create(c.Context(), userID, r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func sendPDF(c *fiber.Ctx, body []byte, name string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(body)
}
