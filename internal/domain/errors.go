package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrEmisorNoAutorizado cubre tanto RNC inexistente como RNC sin
	// autorización de emisión electrónica: para el emisor son el mismo rechazo.
	ErrEmisorNoAutorizado = errors.New("el RNC del emisor no está activo o autorizado")

	// ErrTransicionInvalida: intento de mover un comprobante fuera de la
	// máquina de estados (los estados terminales nunca retroceden).
	ErrTransicionInvalida = errors.New("transición de estado no permitida")

	// ErrServicioNoDisponible marca fallas de infraestructura (storage caído,
	// timeout de lock o transacción). El emisor puede reintentar; nunca se
	// persiste un rechazo por esta causa.
	ErrServicioNoDisponible = errors.New("servicio temporalmente no disponible")
)

// Errores de asignación de secuencia. El pipeline los distingue para el
// mensaje al emisor; todos son rechazos de negocio definitivos.
var (
	ErrSecuenciaNoActiva  = errors.New("no existe secuencia activa para el emisor y tipo de e-CF")
	ErrSecuenciaVencida   = errors.New("la secuencia de eNCF ha vencido")
	ErrSecuenciaAnulada   = errors.New("la secuencia fue anulada")
	ErrNumeroFueraDeRango = errors.New("el eNCF está fuera del rango autorizado")
	ErrCapacidadAgotada   = errors.New("la cantidad autorizada de la secuencia está agotada")
)

// EsErrorDeAsignacion indica si err pertenece a la taxonomía de asignación.
func EsErrorDeAsignacion(err error) bool {
	return errors.Is(err, ErrSecuenciaNoActiva) ||
		errors.Is(err, ErrSecuenciaVencida) ||
		errors.Is(err, ErrSecuenciaAnulada) ||
		errors.Is(err, ErrNumeroFueraDeRango) ||
		errors.Is(err, ErrCapacidadAgotada)
}
