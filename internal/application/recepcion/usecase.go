package recepcion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/ecf"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
	"github.com/tu-usuario/dgii-ecf/pkg/dgii"
	"github.com/tu-usuario/dgii-ecf/pkg/logger"
)

// UseCase es el pipeline de recepción de e-CF: valida, detecta duplicados,
// asigna la secuencia y persiste la decisión. Todo rechazo de negocio vuelve
// como respuesta DGII con código específico y error nil; solo las fallas de
// infraestructura (storage, transacción) retornan error, envuelto en
// domain.ErrServicioNoDisponible, para que el handler responda "reintente".
type UseCase struct {
	txRunner          TxRunner
	comprobanteRepo   repository.ComprobanteRepository
	contribuyenteRepo repository.ContribuyenteRepository
	logRepo           repository.LogTransaccionRepository
	log               *logger.Logger
}

// NewUseCase construye el pipeline.
func NewUseCase(
	txRunner TxRunner,
	comprobanteRepo repository.ComprobanteRepository,
	contribuyenteRepo repository.ContribuyenteRepository,
	logRepo repository.LogTransaccionRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:          txRunner,
		comprobanteRepo:   comprobanteRepo,
		contribuyenteRepo: contribuyenteRepo,
		logRepo:           logRepo,
		log:               log,
	}
}

// RecibirECF ejecuta la cadena de decisión secuencial. Cualquier paso
// fallido corta a Rechazado con su mensaje específico y omite los pasos
// siguientes; la resubmisión del mismo (rnc, eNCF) es segura porque el
// chequeo de duplicados hace el pipeline idempotente una vez alcanzado un
// estado terminal.
func (uc *UseCase) RecibirECF(ctx context.Context, req dto.RecepcionECFRequest) (*dto.RecepcionECFResponse, error) {
	trackID := uuid.New().String()
	recibido := time.Now()

	if len(req.Archivo) == 0 || len(req.Archivo) > dgii.MaxTamanoArchivo {
		uc.auditar(ctx, entity.NuevoLogError("recepcion", "archivo vacío o excede el tamaño máximo",
			map[string]any{"tamano": len(req.Archivo)}, req.RncEmisor, trackID))
		return rechazo(trackID, req.RncEmisor, "", recibido,
			dto.Mensaje{Valor: dgii.MensajeXMLMalformado, Codigo: dgii.CodigoXMLMalformado}), nil
	}

	// 1) Emisor autorizado: "no existe" y "no habilitado" son el mismo rechazo.
	contribuyente, err := uc.contribuyenteRepo.FindByRnc(ctx, req.RncEmisor)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar contribuyente: %v", domain.ErrServicioNoDisponible, err)
	}
	if contribuyente == nil || !contribuyente.PuedeEmitir() {
		uc.auditar(ctx, entity.NuevoLogError("recepcion", "RNC emisor no autorizado",
			map[string]any{"rncEmisor": req.RncEmisor}, req.RncEmisor, trackID))
		return rechazo(trackID, req.RncEmisor, "", recibido,
			dto.Mensaje{Valor: dgii.MensajeRNCInactivo, Codigo: dgii.CodigoRNCInactivo}), nil
	}

	// 2) Validación estructural: pura, sin tocar secuencias ni comprobantes.
	validacion := ecf.Validar(req.Archivo)
	if !validacion.EsValido {
		mensajes := make([]dto.Mensaje, 0, len(validacion.Errores))
		for _, e := range validacion.Errores {
			mensajes = append(mensajes, dto.Mensaje{Valor: e, Codigo: dgii.CodigoXMLMalformado})
		}
		uc.auditar(ctx, entity.NuevoLogError("recepcion", "XML inválido",
			map[string]any{"errores": validacion.Errores}, req.RncEmisor, trackID).
			ConArchivo(req.NombreArchivo, len(req.Archivo)))
		return rechazo(trackID, req.RncEmisor, validacion.Campos.ENCF, recibido, mensajes...), nil
	}

	// 3) Identificación: la estructura pasó pero los campos pueden venir
	// vacíos o fuera de catálogo; es un rechazo distinto del estructural.
	campos := validacion.Campos
	numero, err := ecf.ParseNumero(campos.ENCF)
	if err != nil || !dgii.EsTipoECFValido(campos.TipoECF) {
		uc.auditar(ctx, entity.NuevoLogError("recepcion", "XML sin eNCF o TipoECF válidos",
			map[string]any{"encf": campos.ENCF, "tipoECF": campos.TipoECF}, req.RncEmisor, trackID))
		return rechazo(trackID, req.RncEmisor, campos.ENCF, recibido,
			dto.Mensaje{Valor: "XML no contiene información de eNCF o TipoECF válida", Codigo: dgii.CodigoXMLMalformado}), nil
	}

	// 4) Duplicado: la secuencia no se toca si el eNCF ya está ocupado.
	existente, err := uc.comprobanteRepo.FindByRncAndENCF(ctx, req.RncEmisor, campos.ENCF)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar duplicado: %v", domain.ErrServicioNoDisponible, err)
	}
	if existente != nil {
		uc.auditar(ctx, entity.NuevoLogError("recepcion", "eNCF ya existe",
			map[string]any{"encf": campos.ENCF, "trackIdExistente": existente.TrackID}, req.RncEmisor, trackID).
			ConENCF(campos.ENCF))
		resp := rechazo(trackID, req.RncEmisor, campos.ENCF, recibido,
			dto.Mensaje{Valor: dgii.MensajeENCFDuplicado, Codigo: dgii.CodigoSecuenciaNoAutorizada})
		uc.persistirRechazo(ctx, uc.construirComprobante(trackID, req, contribuyente, campos, recibido), dgii.MensajeENCFDuplicado)
		return resp, nil
	}

	// Huella canónica para auditoría; su falla no es causa de rechazo.
	huella, err := ecf.Huella(req.Archivo)
	if err != nil {
		uc.log.Warn().Err(err).Str("track_id", trackID).Msg("no se pudo calcular la huella C14N")
	}

	// 5+6) Asignación y persistencia: una sola unidad atómica. Si el INSERT
	// del comprobante falla tras el incremento, la transacción revierte
	// ambos; la capacidad nunca queda consumida sin documento.
	var errAsignacion error
	comprobante := uc.construirComprobante(trackID, req, contribuyente, campos, recibido)
	comprobante.HuellaXML = huella

	err = uc.txRunner.RunRecepcion(ctx, func(
		secRepo repository.SecuenciaRepository,
		compRepo repository.ComprobanteRepository,
	) error {
		if err := secRepo.Allocate(ctx, req.RncEmisor, campos.TipoECF, numero); err != nil {
			if domain.EsErrorDeAsignacion(err) {
				errAsignacion = err
				return nil // la transacción no tiene nada que revertir
			}
			return err
		}
		comprobante.Estado = entity.EstadoAceptado
		comprobante.MensajeEstado = dgii.MensajeRecibido
		comprobante.SecuenciaUtilizada = true
		return compRepo.Create(ctx, comprobante)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Carrera perdida contra otro envío del mismo eNCF: mismo
			// tratamiento que el duplicado detectado en el paso 4.
			uc.auditar(ctx, entity.NuevoLogError("recepcion", "eNCF duplicado en persistencia",
				map[string]any{"encf": campos.ENCF}, req.RncEmisor, trackID))
			return rechazo(trackID, req.RncEmisor, campos.ENCF, recibido,
				dto.Mensaje{Valor: dgii.MensajeENCFDuplicado, Codigo: dgii.CodigoSecuenciaNoAutorizada}), nil
		}
		return nil, fmt.Errorf("%w: transacción de recepción: %v", domain.ErrServicioNoDisponible, err)
	}

	if errAsignacion != nil {
		mensaje := mensajeAsignacion(errAsignacion)
		uc.auditar(ctx, entity.NuevoLogError("recepcion", "secuencia no asignable",
			map[string]any{"encf": campos.ENCF, "motivo": errAsignacion.Error()}, req.RncEmisor, trackID).
			ConENCF(campos.ENCF))
		uc.persistirRechazo(ctx, uc.construirComprobante(trackID, req, contribuyente, campos, recibido), mensaje.Valor)
		return rechazo(trackID, req.RncEmisor, campos.ENCF, recibido, mensaje), nil
	}

	uc.auditar(ctx, entity.NuevoLogInfo("recepcion", "e-CF aceptado",
		map[string]any{"encf": campos.ENCF, "tipoECF": campos.TipoECF}, req.RncEmisor, trackID).
		ConArchivo(req.NombreArchivo, len(req.Archivo)).ConENCF(campos.ENCF))

	return &dto.RecepcionECFResponse{
		TrackID:            trackID,
		Codigo:             int(entity.EstadoAceptado),
		Estado:             entity.EstadoAceptado.String(),
		RNC:                req.RncEmisor,
		ENCF:               campos.ENCF,
		SecuenciaUtilizada: true,
		FechaRecepcion:     recibido.Format(time.RFC3339),
		Mensajes:           []dto.Mensaje{{Valor: dgii.MensajeRecibido, Codigo: dgii.CodigoOK}},
	}, nil
}

// construirComprobante arma el agregado con los campos extraídos; el estado
// inicial es EnProceso y la decisión lo mueve exactamente una vez.
func (uc *UseCase) construirComprobante(
	trackID string,
	req dto.RecepcionECFRequest,
	contribuyente *entity.Contribuyente,
	campos ecf.CamposExtraidos,
	recibido time.Time,
) *entity.Comprobante {
	fechaEmision := campos.FechaEmision
	if fechaEmision.IsZero() {
		fechaEmision = recibido
	}
	return &entity.Comprobante{
		ID:                    uuid.New().String(),
		TrackID:               trackID,
		RncEmisor:             req.RncEmisor,
		ENCF:                  campos.ENCF,
		TipoECF:               campos.TipoECF,
		RazonSocialEmisor:     contribuyente.RazonSocial,
		RncComprador:          campos.RncComprador,
		RazonSocialComprador:  campos.RazonSocialComprador,
		MontoTotal:            campos.MontoTotal,
		TotalITBIS:            campos.TotalITBIS,
		Estado:                entity.EstadoEnProceso,
		FechaEmision:          fechaEmision,
		FechaRecepcion:        recibido,
		XMLOriginal:           string(req.Archivo),
		NombreArchivoOriginal: req.NombreArchivo,
	}
}

// persistirRechazo graba el comprobante Rechazado para auditoría (solo en
// ramas con eNCF extraído; secuenciaUtilizada queda en false y el registro
// jamás se reintenta automáticamente). Una falla aquí no cambia la decisión:
// el rechazo ya fue respondido.
func (uc *UseCase) persistirRechazo(ctx context.Context, c *entity.Comprobante, mensaje string) {
	c.Estado = entity.EstadoRechazado
	c.MensajeEstado = mensaje
	c.SecuenciaUtilizada = false
	if err := uc.comprobanteRepo.Create(ctx, c); err != nil {
		uc.log.Warn().Err(err).Str("track_id", c.TrackID).Msg("no se pudo persistir el comprobante rechazado")
	}
}

// auditar es fire-and-forget: la pista de auditoría nunca aborta la decisión.
func (uc *UseCase) auditar(ctx context.Context, l *entity.LogTransaccion) {
	if err := uc.logRepo.Create(ctx, l); err != nil {
		uc.log.Warn().Err(err).Str("track_id", l.TrackID).Msg("no se pudo grabar la auditoría")
	}
}

func mensajeAsignacion(err error) dto.Mensaje {
	switch {
	case errors.Is(err, domain.ErrSecuenciaVencida):
		return dto.Mensaje{Valor: dgii.MensajeSecuenciaVencida, Codigo: dgii.CodigoSecuenciaVencida}
	case errors.Is(err, domain.ErrSecuenciaAnulada),
		errors.Is(err, domain.ErrSecuenciaNoActiva),
		errors.Is(err, domain.ErrNumeroFueraDeRango),
		errors.Is(err, domain.ErrCapacidadAgotada):
		return dto.Mensaje{Valor: err.Error(), Codigo: dgii.CodigoSecuenciaNoAutorizada}
	default:
		return dto.Mensaje{Valor: dgii.MensajeSecuenciaNoAutorizada, Codigo: dgii.CodigoSecuenciaNoAutorizada}
	}
}

func rechazo(trackID, rnc, encf string, recibido time.Time, mensajes ...dto.Mensaje) *dto.RecepcionECFResponse {
	return &dto.RecepcionECFResponse{
		TrackID:            trackID,
		Codigo:             int(entity.EstadoRechazado),
		Estado:             entity.EstadoRechazado.String(),
		RNC:                rnc,
		ENCF:               encf,
		SecuenciaUtilizada: false,
		FechaRecepcion:     recibido.Format(time.RFC3339),
		Mensajes:           mensajes,
	}
}
