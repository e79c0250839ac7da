package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/application/recepcion"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/pkg/dgii"
)

// RecepcionHandler maneja la recepción de e-CF (protegido).
type RecepcionHandler struct {
	uc *recepcion.UseCase
}

// NewRecepcionHandler construye el handler.
func NewRecepcionHandler(uc *recepcion.UseCase) *RecepcionHandler {
	return &RecepcionHandler{uc: uc}
}

// Recibir recibe el XML de un e-CF. Acepta multipart (campo "xml") o el
// cuerpo crudo con Content-Type application/xml.
// POST /api/facturaselectronicas
func (h *RecepcionHandler) Recibir(c *fiber.Ctx) error {
	rnc := GetRNC(c)
	if rnc == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}

	nombre, archivo, err := leerArchivo(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo XML requerido (campo multipart \"xml\" o cuerpo crudo)"})
	}

	resp, err := h.uc.RecibirECF(c.Context(), dto.RecepcionECFRequest{
		RncEmisor:     rnc,
		NombreArchivo: nombre,
		Archivo:       archivo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrServicioNoDisponible) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.RecepcionECFResponse{
				Estado:   "Servicio no disponible",
				Mensajes: []dto.Mensaje{{Valor: dgii.MensajeServicioNoDisponible, Codigo: dgii.CodigoServicioNoDisponible}},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// leerArchivo extrae el XML del request: primero el campo multipart "xml",
// si no hay multipart se usa el cuerpo completo.
func leerArchivo(c *fiber.Ctx) (string, []byte, error) {
	if fh, err := c.FormFile("xml"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", nil, err
		}
		return fh.Filename, data, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return "", nil, errors.New("cuerpo vacío")
	}
	// Copia: fiber reutiliza el buffer del body entre requests.
	data := make([]byte, len(body))
	copy(data, body)
	return "", data, nil
}
