package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dashboard"
	"github.com/jhoicas/gestor-notas-api/internal/domain/period"
)

// DashboardHandler maneja GET /api/dashboard.
type DashboardHandler struct {
	uc  *dashboard.UseCase
	now func() time.Time
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase, now func() time.Time, log zerolog.Logger) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{uc: uc, now: now, log: log}
}

// Get godoc
// @Summary      Estadísticas del período
// @Description  Sin parámetros se usa el mes en curso. month es el índice 0–11.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        mode   query  string  false  "month | year"
// @Param        year   query  int     false  "año"
// @Param        month  query  int     false  "0–11"
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	now := h.now().UTC()
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	month, err := queryInt(c, "month", int(now.Month())-1)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	sel := period.Selection{
		Mode:  period.Mode(c.Query("mode", string(period.ModeMonth))),
		Year:  year,
		Month: month,
	}
	if err := sel.Validate(); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.Get(c.Context(), userID, sel)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// queryInt lee un entero opcional de la query; a diferencia de c.QueryInt,
// un valor presente pero no numérico es un error.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %q", key, raw)
	}
	return n, nil
}
