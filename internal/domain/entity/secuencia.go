package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
)

// Secuencia representa un rango de eNCF autorizado por la DGII para un
// (RNC emisor, tipo de e-CF). La numeración puede consumirse en cualquier
// orden dentro del rango; SecuenciaActual registra el último número usado,
// no un puntero de avance.
type Secuencia struct {
	ID                 string
	RncEmisor          string
	TipoECF            int
	SecuenciaDesde     int64 // límite inferior del rango (parte numérica del eNCF)
	SecuenciaHasta     int64 // límite superior del rango
	SecuenciaActual    int64 // último número consumido; 0 si ninguno
	CantidadAutorizada int
	CantidadUtilizada  int
	FechaAutorizacion  time.Time
	FechaVencimiento   time.Time
	Activa             bool
	Anulada            bool
	MotivoAnulacion    string
	FechaAnulacion     *time.Time
	MontoMaximo        decimal.Decimal // 0 = sin tope por comprobante
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Vencida indica si la secuencia pasó su fecha de vencimiento.
func (s *Secuencia) Vencida(ahora time.Time) bool {
	return ahora.After(s.FechaVencimiento)
}

// Disponible es la capacidad restante.
func (s *Secuencia) Disponible() int {
	return s.CantidadAutorizada - s.CantidadUtilizada
}

// Evaluar es la función de decisión pura de la asignación: clasifica por qué
// (o si) el número puede consumirse, sin mutar nada. La mutación real ocurre
// en el repositorio dentro de la misma transacción (UPDATE condicionado),
// de modo que la frontera de atomicidad es explícita y no depende del orden
// de llamadas.
func (s *Secuencia) Evaluar(numero int64, ahora time.Time) error {
	if s.Anulada {
		return domain.ErrSecuenciaAnulada
	}
	if !s.Activa {
		return domain.ErrSecuenciaNoActiva
	}
	if s.Vencida(ahora) {
		return domain.ErrSecuenciaVencida
	}
	if numero < s.SecuenciaDesde || numero > s.SecuenciaHasta {
		return domain.ErrNumeroFueraDeRango
	}
	if s.CantidadUtilizada >= s.CantidadAutorizada {
		return domain.ErrCapacidadAgotada
	}
	return nil
}

// Anular marca la secuencia como anulada; ninguna asignación posterior
// puede usarla, sin importar rango o capacidad restante.
func (s *Secuencia) Anular(motivo string, ahora time.Time) {
	s.Anulada = true
	s.MotivoAnulacion = motivo
	s.FechaAnulacion = &ahora
	s.UpdatedAt = ahora
}

// Reactivar revierte una anulación administrativa.
func (s *Secuencia) Reactivar(ahora time.Time) {
	s.Anulada = false
	s.MotivoAnulacion = ""
	s.FechaAnulacion = nil
	s.UpdatedAt = ahora
}

// Solapa indica si el rango [desde, hasta] intersecta el de la secuencia.
func (s *Secuencia) Solapa(desde, hasta int64) bool {
	return desde <= s.SecuenciaHasta && hasta >= s.SecuenciaDesde
}
