package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/dgii-ecf/internal/application/consulta"
	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
)

// ConsultaHandler maneja las consultas de estado (protegido).
type ConsultaHandler struct {
	uc *consulta.UseCase
}

// NewConsultaHandler construye el handler.
func NewConsultaHandler(uc *consulta.UseCase) *ConsultaHandler {
	return &ConsultaHandler{uc: uc}
}

// Estado consulta el estado de un envío por trackId o por (rnc, encf).
// GET /api/consultas/estado?trackId=...  |  ?rnc=...&encf=...
func (h *ConsultaHandler) Estado(c *fiber.Ctx) error {
	trackID := c.Query("trackId")
	rnc := c.Query("rnc")
	encf := c.Query("encf")

	resp, err := h.uc.ConsultarEstado(c.Context(), trackID, rnc, encf)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "trackId o (rnc, encf) requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// TrackIDs lista los envíos de un RNC, opcionalmente filtrados por eNCF.
// GET /api/trackids/consulta?rnc=...&encf=...
func (h *ConsultaHandler) TrackIDs(c *fiber.Ctx) error {
	rnc := c.Query("rnc")
	if rnc == "" {
		rnc = GetRNC(c)
	}
	resp, err := h.uc.ConsultarTrackIDs(c.Context(), rnc, c.Query("encf"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rnc requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Acuse devuelve el XML ARECF del comprobante aceptado.
// GET /api/consultas/acuse/:trackId
func (h *ConsultaHandler) Acuse(c *fiber.Ctx) error {
	trackID := c.Params("trackId")
	if trackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "trackId requerido"})
	}
	xml, err := h.uc.GenerarAcuseRecibo(c.Context(), trackID)
	if err != nil {
		return errorAcuse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(xml)
}

// AcusePDF devuelve la representación impresa del acuse.
// GET /api/consultas/acuse/:trackId/pdf
func (h *ConsultaHandler) AcusePDF(c *fiber.Ctx) error {
	trackID := c.Params("trackId")
	if trackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "trackId requerido"})
	}
	pdf, err := h.uc.GenerarAcusePDF(c.Context(), trackID)
	if err != nil {
		return errorAcuse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="acuse-`+trackID+`.pdf"`)
	return c.Send(pdf)
}

func errorAcuse(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_ACCEPTED", Message: "el comprobante no está aceptado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
