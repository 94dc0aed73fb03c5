package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dto"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
)

// RevenueHandler pagos recibidos (protegido).
type RevenueHandler struct {
	uc  *records.RevenueUseCase
	log zerolog.Logger
}

func NewRevenueHandler(uc *records.RevenueUseCase, log zerolog.Logger) *RevenueHandler {
	return &RevenueHandler{uc: uc, log: log}
}

// POST /api/revenues
func (h *RevenueHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RevenueRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/revenues/:id
func (h *RevenueHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RevenueRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DELETE /api/revenues/:id
func (h *RevenueHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/revenues?from=&to=
func (h *RevenueHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "VALIDATION", "parámetros inválidos")
	}
	out, err := h.uc.List(c.Context(), userID, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DebtHandler deudas Corte & Cose (protegido).
type DebtHandler struct {
	uc  *records.DebtUseCase
	log zerolog.Logger
}

func NewDebtHandler(uc *records.DebtUseCase, log zerolog.Logger) *DebtHandler {
	return &DebtHandler{uc: uc, log: log}
}

// POST /api/debts
func (h *DebtHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.DebtRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/debts/:id
func (h *DebtHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.DebtRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DELETE /api/debts/:id
func (h *DebtHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/debts?from=&to=
func (h *DebtHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "VALIDATION", "parámetros inválidos")
	}
	out, err := h.uc.List(c.Context(), userID, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
