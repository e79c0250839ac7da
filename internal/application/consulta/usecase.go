// Package consulta implementa las proyecciones de solo lectura sobre los
// comprobantes recibidos: estado por trackId o (rnc, eNCF), listado de
// envíos y generación del acuse de recibo.
package consulta

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
)

// AcusePDFGenerator genera la representación impresa del acuse de recibo.
type AcusePDFGenerator interface {
	GenerarAcusePDF(ctx context.Context, c *entity.Comprobante) ([]byte, error)
}

// UseCase agrupa las consultas de estado.
type UseCase struct {
	comprobanteRepo repository.ComprobanteRepository
	pdfGenerator    AcusePDFGenerator
}

// NewUseCase construye el servicio de consultas.
func NewUseCase(comprobanteRepo repository.ComprobanteRepository, pdfGenerator AcusePDFGenerator) *UseCase {
	return &UseCase{comprobanteRepo: comprobanteRepo, pdfGenerator: pdfGenerator}
}

// ConsultarEstado busca por trackId o, en su defecto, por (rnc, eNCF).
func (uc *UseCase) ConsultarEstado(ctx context.Context, trackID, rnc, encf string) (*dto.ConsultaEstadoResponse, error) {
	var c *entity.Comprobante
	var err error

	switch {
	case trackID != "":
		c, err = uc.comprobanteRepo.FindByTrackID(ctx, trackID)
	case rnc != "" && encf != "":
		c, err = uc.comprobanteRepo.FindByRncAndENCF(ctx, rnc, encf)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, fmt.Errorf("consultar estado: %w", err)
	}
	if c == nil {
		return &dto.ConsultaEstadoResponse{
			TrackID:        trackID,
			Codigo:         int(entity.EstadoNoEncontrado),
			Estado:         entity.EstadoNoEncontrado.String(),
			RNC:            rnc,
			ENCF:           encf,
			FechaRecepcion: time.Now().Format(time.RFC3339),
			Mensajes:       []dto.Mensaje{{Valor: "No se encontró el comprobante solicitado", Codigo: 0}},
		}, nil
	}
	return proyectar(c), nil
}

// ConsultarTrackIDs lista los envíos de un RNC, opcionalmente por eNCF.
func (uc *UseCase) ConsultarTrackIDs(ctx context.Context, rnc, encf string) (*dto.ConsultaTrackIDsResponse, error) {
	if rnc == "" {
		return nil, domain.ErrInvalidInput
	}
	comprobantes, err := uc.comprobanteRepo.ListTrackIDs(ctx, rnc, encf)
	if err != nil {
		return nil, fmt.Errorf("listar trackIds: %w", err)
	}
	resp := &dto.ConsultaTrackIDsResponse{TrackIDs: make([]dto.TrackIDInfo, 0, len(comprobantes))}
	for _, c := range comprobantes {
		resp.TrackIDs = append(resp.TrackIDs, dto.TrackIDInfo{
			TrackID:        c.TrackID,
			ENCF:           c.ENCF,
			Estado:         c.Estado.String(),
			MontoTotal:     c.MontoTotal.StringFixed(2),
			FechaRecepcion: c.FechaRecepcion.Format(time.RFC3339),
		})
	}
	resp.TotalRegistros = len(resp.TrackIDs)
	return resp, nil
}

// GenerarAcuseRecibo produce el XML ARECF del comprobante aceptado.
func (uc *UseCase) GenerarAcuseRecibo(ctx context.Context, trackID string) ([]byte, error) {
	c, err := uc.buscarAceptado(ctx, trackID)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ARECF")
	root.CreateElement("TrackId").SetText(c.TrackID)
	root.CreateElement("RNCEmisor").SetText(c.RncEmisor)
	root.CreateElement("eNCF").SetText(c.ENCF)
	root.CreateElement("FechaRecepcion").SetText(c.FechaRecepcion.Format(time.RFC3339))
	root.CreateElement("Estado").SetText(c.Estado.String())
	doc.Indent(2)
	return doc.WriteToBytes()
}

// GenerarAcusePDF produce la representación impresa del acuse.
func (uc *UseCase) GenerarAcusePDF(ctx context.Context, trackID string) ([]byte, error) {
	c, err := uc.buscarAceptado(ctx, trackID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerarAcusePDF(ctx, c)
}

func (uc *UseCase) buscarAceptado(ctx context.Context, trackID string) (*entity.Comprobante, error) {
	c, err := uc.comprobanteRepo.FindByTrackID(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("buscar comprobante: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !c.Aceptado() {
		return nil, domain.ErrConflict
	}
	return c, nil
}

func proyectar(c *entity.Comprobante) *dto.ConsultaEstadoResponse {
	resp := &dto.ConsultaEstadoResponse{
		TrackID:            c.TrackID,
		Codigo:             int(c.Estado),
		Estado:             c.Estado.String(),
		RNC:                c.RncEmisor,
		ENCF:               c.ENCF,
		SecuenciaUtilizada: c.SecuenciaUtilizada,
		MontoTotal:         c.MontoTotal.StringFixed(2),
		TotalITBIS:         c.TotalITBIS.StringFixed(2),
		FechaRecepcion:     c.FechaRecepcion.Format(time.RFC3339),
	}
	if c.FechaProcesamiento != nil {
		resp.FechaProcesamiento = c.FechaProcesamiento.Format(time.RFC3339)
	}
	if c.MensajeEstado != "" {
		resp.Mensajes = []dto.Mensaje{{Valor: c.MensajeEstado, Codigo: int(c.Estado)}}
	}
	return resp
}
