package repository

import (
	"context"

	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
)

// SecuenciaRepository define el puerto del registro de secuencias eNCF.
//
// Allocate es la operación crítica del subsistema: debe ser exactamente-una-
// vez y libre de carreras. Dos envíos concurrentes sobre el mismo (rnc,
// tipoECF) jamás pueden consumir capacidad por encima de la autorizada ni
// reportar éxito ambos para el mismo número. La implementación PostgreSQL lo
// garantiza con SELECT FOR UPDATE + UPDATE condicionado dentro de la
// transacción de la recepción; un leer-verificar-escribir en código de
// aplicación no es aceptable.
type SecuenciaRepository interface {
	Create(ctx context.Context, s *entity.Secuencia) error
	FindByID(ctx context.Context, id string) (*entity.Secuencia, error)
	ListByRnc(ctx context.Context, rnc string) ([]*entity.Secuencia, error)

	// CanAllocate verifica sin consumir: existe secuencia activa, vigente y
	// no anulada para (rnc, tipoECF) cuyo rango contiene numero y con
	// capacidad restante. Devuelve nil o el error de asignación específico.
	CanAllocate(ctx context.Context, rnc string, tipoECF int, numero int64) error

	// Allocate consume atómicamente un lugar de la secuencia: incrementa
	// cantidad_utilizada y registra numero como secuencia_actual. Devuelve
	// el error de asignación específico si la verificación falla.
	Allocate(ctx context.Context, rnc string, tipoECF int, numero int64) error

	// Rollback compensa una asignación cuya persistencia de comprobante
	// falló (solo para implementaciones que no comparten transacción).
	Rollback(ctx context.Context, rnc string, tipoECF int, numero int64) error

	// AnularRango anula las secuencias del (rnc, tipoECF) que solapan
	// [desde, hasta]; el registro completo se anula (granularidad gruesa).
	// Devuelve las secuencias anuladas.
	AnularRango(ctx context.Context, rnc string, tipoECF int, desde, hasta int64, motivo string) ([]*entity.Secuencia, error)

	// Reactivar revierte la anulación administrativa de una secuencia.
	Reactivar(ctx context.Context, id string) error
}
