package repository

import (
	"context"

	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
)

// ComprobanteRepository define el puerto de persistencia de comprobantes.
// Es la única fuente de verdad de "este documento ya fue recibido".
type ComprobanteRepository interface {
	// Create persiste un comprobante nuevo. Falla con domain.ErrDuplicate si
	// el TrackID ya existe (defensivo: el pipeline lo genera fresco) o si ya
	// hay un comprobante no rechazado con el mismo (rnc, eNCF).
	Create(ctx context.Context, c *entity.Comprobante) error

	FindByTrackID(ctx context.Context, trackID string) (*entity.Comprobante, error)

	// FindByRncAndENCF busca entre los comprobantes cuyo eNCF sigue ocupado:
	// los rechazados sin secuencia consumida no bloquean el número.
	FindByRncAndENCF(ctx context.Context, rnc, encf string) (*entity.Comprobante, error)

	// UpdateEstado aplica una transición de la máquina de estados con
	// compare-and-set sobre el estado actual; falla con
	// domain.ErrTransicionInvalida si el estado en base ya no es el esperado.
	UpdateEstado(ctx context.Context, trackID string, desde, hacia entity.EstadoComprobante, mensaje string) error

	// ListTrackIDs lista los envíos de un RNC, opcionalmente filtrados por eNCF.
	ListTrackIDs(ctx context.Context, rnc, encf string) ([]*entity.Comprobante, error)
}
