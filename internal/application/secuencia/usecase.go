// Package secuencia implementa las operaciones administrativas sobre
// secuencias eNCF (anulación de rango, reactivación, listado) y la
// confirmación Aceptado → Procesado de comprobantes.
package secuencia

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/ecf"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
	"github.com/tu-usuario/dgii-ecf/pkg/dgii"
	"github.com/tu-usuario/dgii-ecf/pkg/logger"
)

// UseCase agrupa la administración de secuencias.
type UseCase struct {
	secuenciaRepo   repository.SecuenciaRepository
	comprobanteRepo repository.ComprobanteRepository
	logRepo         repository.LogTransaccionRepository
	log             *logger.Logger
}

// NewUseCase construye el servicio.
func NewUseCase(
	secuenciaRepo repository.SecuenciaRepository,
	comprobanteRepo repository.ComprobanteRepository,
	logRepo repository.LogTransaccionRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		secuenciaRepo:   secuenciaRepo,
		comprobanteRepo: comprobanteRepo,
		logRepo:         logRepo,
		log:             log,
	}
}

// AnularRango anula las secuencias del (rnc, tipoECF) que solapan el rango
// solicitado. La anulación opera sobre el registro completo de la secuencia
// (granularidad gruesa); toda asignación posterior contra ellas falla de
// forma determinista.
func (uc *UseCase) AnularRango(ctx context.Context, req dto.AnulacionRangoRequest) (*dto.AnulacionRangoResponse, error) {
	if req.RncEmisor == "" || req.MotivoAnulacion == "" {
		return nil, domain.ErrInvalidInput
	}
	if !dgii.EsTipoECFValido(req.TipoECF) {
		return nil, domain.ErrInvalidInput
	}
	desde, err := ecf.ParseNumero(req.SecuenciaDesde)
	if err != nil {
		return nil, fmt.Errorf("%w: secuenciaDesde: %v", domain.ErrInvalidInput, err)
	}
	hasta, err := ecf.ParseNumero(req.SecuenciaHasta)
	if err != nil {
		return nil, fmt.Errorf("%w: secuenciaHasta: %v", domain.ErrInvalidInput, err)
	}
	if desde > hasta {
		return nil, domain.ErrInvalidInput
	}

	anuladas, err := uc.secuenciaRepo.AnularRango(ctx, req.RncEmisor, req.TipoECF, desde, hasta, req.MotivoAnulacion)
	if err != nil {
		return nil, fmt.Errorf("anular rango: %w", err)
	}
	if len(anuladas) == 0 {
		return nil, domain.ErrNotFound
	}

	ahora := time.Now()
	rangos := make([]string, 0, len(anuladas))
	for _, s := range anuladas {
		rangos = append(rangos, ecf.FormatNumero(s.SecuenciaDesde)+"-"+ecf.FormatNumero(s.SecuenciaHasta))
	}
	uc.auditar(ctx, entity.NuevoLogInfo("anulacion", "rango de secuencias anulado",
		map[string]any{"tipoECF": req.TipoECF, "rangos": rangos, "motivo": req.MotivoAnulacion},
		req.RncEmisor, ""))

	return &dto.AnulacionRangoResponse{
		RNC:                req.RncEmisor,
		Codigo:             int(entity.EstadoAceptado),
		Estado:             entity.EstadoAceptado.String(),
		SecuenciasAnuladas: rangos,
		FechaAnulacion:     ahora.Format(time.RFC3339),
		Mensajes:           []dto.Mensaje{{Valor: "Rango de secuencias anulado exitosamente", Codigo: dgii.CodigoOK}},
	}, nil
}

// Reactivar revierte la anulación administrativa de una secuencia.
func (uc *UseCase) Reactivar(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.secuenciaRepo.Reactivar(ctx, id)
}

// ListarPorRnc proyecta las secuencias de un emisor.
func (uc *UseCase) ListarPorRnc(ctx context.Context, rnc string) ([]dto.SecuenciaResponse, error) {
	if rnc == "" {
		return nil, domain.ErrInvalidInput
	}
	secuencias, err := uc.secuenciaRepo.ListByRnc(ctx, rnc)
	if err != nil {
		return nil, fmt.Errorf("listar secuencias: %w", err)
	}
	out := make([]dto.SecuenciaResponse, 0, len(secuencias))
	for _, s := range secuencias {
		resp := dto.SecuenciaResponse{
			ID:                 s.ID,
			RncEmisor:          s.RncEmisor,
			TipoECF:            s.TipoECF,
			SecuenciaDesde:     ecf.FormatNumero(s.SecuenciaDesde),
			SecuenciaHasta:     ecf.FormatNumero(s.SecuenciaHasta),
			CantidadAutorizada: s.CantidadAutorizada,
			CantidadUtilizada:  s.CantidadUtilizada,
			CantidadDisponible: s.Disponible(),
			FechaVencimiento:   s.FechaVencimiento.Format("2006-01-02"),
			Activa:             s.Activa,
			Anulada:            s.Anulada,
			MotivoAnulacion:    s.MotivoAnulacion,
		}
		if s.SecuenciaActual > 0 {
			resp.SecuenciaActual = ecf.FormatNumero(s.SecuenciaActual)
		}
		out = append(out, resp)
	}
	return out, nil
}

// ProcesarComprobante aplica la confirmación administrativa
// Aceptado → Procesado. Procesado es terminal.
func (uc *UseCase) ProcesarComprobante(ctx context.Context, trackID string) error {
	c, err := uc.comprobanteRepo.FindByTrackID(ctx, trackID)
	if err != nil {
		return fmt.Errorf("buscar comprobante: %w", err)
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.comprobanteRepo.UpdateEstado(ctx, trackID, entity.EstadoAceptado, entity.EstadoProcesado, "Comprobante procesado"); err != nil {
		return err
	}
	uc.auditar(ctx, entity.NuevoLogInfo("aprobacion", "comprobante procesado",
		map[string]any{"encf": c.ENCF}, c.RncEmisor, trackID))
	return nil
}

func (uc *UseCase) auditar(ctx context.Context, l *entity.LogTransaccion) {
	if err := uc.logRepo.Create(ctx, l); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo grabar la auditoría")
	}
}
