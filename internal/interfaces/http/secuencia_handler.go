package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/application/secuencia"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
)

// SecuenciaHandler maneja la administración de secuencias (protegido).
type SecuenciaHandler struct {
	uc *secuencia.UseCase
}

// NewSecuenciaHandler construye el handler.
func NewSecuenciaHandler(uc *secuencia.UseCase) *SecuenciaHandler {
	return &SecuenciaHandler{uc: uc}
}

// AnularRango anula un rango de secuencias del emisor autenticado.
// POST /api/operaciones/anularrango
func (h *SecuenciaHandler) AnularRango(c *fiber.Ctx) error {
	var in dto.AnulacionRangoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RncEmisor == "" {
		in.RncEmisor = GetRNC(c)
	}
	resp, err := h.uc.AnularRango(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay secuencias que solapen el rango indicado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Reactivar revierte la anulación administrativa de una secuencia.
// POST /api/secuencias/:id/reactivar
func (h *SecuenciaHandler) Reactivar(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Reactivar(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "secuencia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Listar lista las secuencias del emisor.
// GET /api/secuencias?rnc=...
func (h *SecuenciaHandler) Listar(c *fiber.Ctx) error {
	rnc := c.Query("rnc")
	if rnc == "" {
		rnc = GetRNC(c)
	}
	resp, err := h.uc.ListarPorRnc(c.Context(), rnc)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rnc requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Procesar confirma administrativamente un comprobante aceptado.
// POST /api/comprobantes/:trackId/procesar
func (h *SecuenciaHandler) Procesar(c *fiber.Ctx) error {
	trackID := c.Params("trackId")
	if trackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "trackId requerido"})
	}
	if err := h.uc.ProcesarComprobante(c.Context(), trackID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
		}
		if errors.Is(err, domain.ErrTransicionInvalida) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "el comprobante no está en estado Aceptado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
