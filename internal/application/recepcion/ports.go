package recepcion

import (
	"context"

	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
)

// TxRunner ejecuta el tramo crítico de la recepción (asignar secuencia +
// persistir comprobante) dentro de una única transacción: si la persistencia
// del comprobante falla después del incremento de la secuencia, todo se
// revierte y la capacidad no queda consumida sin documento.
type TxRunner interface {
	RunRecepcion(ctx context.Context, fn func(
		secRepo repository.SecuenciaRepository,
		compRepo repository.ComprobanteRepository,
	) error) error
}
