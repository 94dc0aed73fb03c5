package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
	"github.com/jhoicas/gestor-notas-api/internal/domain"
	domreport "github.com/jhoicas/gestor-notas-api/internal/domain/report"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// PublicReportHandler sirve las instantáneas compartidas sin autenticación.
type PublicReportHandler struct {
	sharing *sharing.UseCase
	log     zerolog.Logger
}

func NewPublicReportHandler(sharing *sharing.UseCase, log zerolog.Logger) *PublicReportHandler {
	return &PublicReportHandler{sharing: sharing, log: log}
}

// JSON godoc
// @Summary      Informe compartido (público)
// @Tags         public
// @Produce      json
// @Param        id   path  string  true  "id del enlace"
// @Success      200  {object}  dto.PublicReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/public/reports/{id} [get]
func (h *PublicReportHandler) JSON(c *fiber.Ctx) error {
	link, err := h.sharing.Resolve(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.PublicReportDTO{
		ID:          link.ID,
		ReportType:  link.ReportType,
		ReportTitle: link.ReportTitle,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		Report:      link.ReportData,
	})
}

type reportPage struct {
	Report    *domreport.Report
	ByMonth   bool
	ExpiresAt *time.Time
}

type statusPage struct {
	Title   string
	Message string
}

// Page página HTML del informe compartido.
// GET /report/:id
func (h *PublicReportHandler) Page(c *fiber.Ctx) error {
	link, err := h.sharing.Resolve(c.Context(), c.Params("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return h.render(c, fiber.StatusNotFound, "status.html", statusPage{
			Title:   "Relatório não encontrado",
			Message: "Este link não existe ou foi removido.",
		})
	case errors.Is(err, domain.ErrLinkExpired):
		return h.render(c, fiber.StatusGone, "status.html", statusPage{
			Title:   "Link expirado",
			Message: "Este link expirou. Peça um novo link a quem o partilhou.",
		})
	case err != nil:
		h.log.Error().Err(err).Str("link_id", c.Params("id")).Msg("resolve shared report")
		return h.render(c, fiber.StatusInternalServerError, "status.html", statusPage{
			Title:   "Erro",
			Message: "Não foi possível carregar o relatório.",
		})
	}

	r, err := sharing.Snapshot(link)
	if err != nil {
		h.log.Error().Err(err).Str("link_id", link.ID).Msg("decode shared report")
		return h.render(c, fiber.StatusInternalServerError, "status.html", statusPage{
			Title:   "Erro",
			Message: "Não foi possível carregar o relatório.",
		})
	}
	return h.render(c, fiber.StatusOK, "report.html", reportPage{
		Report:    r,
		ByMonth:   r.Type.ByMonth(),
		ExpiresAt: link.ExpiresAt,
	})
}

func (h *PublicReportHandler) render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("template execution failed")
		return c.Status(fiber.StatusInternalServerError).SendString("erro interno")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
