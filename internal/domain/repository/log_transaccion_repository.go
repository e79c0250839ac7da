package repository

import (
	"context"

	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
)

// LogTransaccionRepository define el puerto de la pista de auditoría.
// El pipeline lo usa fire-and-forget: un error aquí se registra en el log
// estructurado pero nunca cambia la decisión de negocio.
type LogTransaccionRepository interface {
	Create(ctx context.Context, l *entity.LogTransaccion) error
	ListByTrackID(ctx context.Context, trackID string) ([]*entity.LogTransaccion, error)
}
