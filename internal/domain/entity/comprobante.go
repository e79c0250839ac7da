package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
)

// EstadoComprobante sigue el catálogo de códigos de respuesta DGII.
// EstadoProcesado es interno (confirmación administrativa posterior a la
// aceptación) y no forma parte del catálogo de respuesta 0-4.
type EstadoComprobante int

const (
	EstadoNoEncontrado        EstadoComprobante = 0
	EstadoAceptado            EstadoComprobante = 1
	EstadoRechazado           EstadoComprobante = 2
	EstadoEnProceso           EstadoComprobante = 3
	EstadoAceptadoCondicional EstadoComprobante = 4
	EstadoProcesado           EstadoComprobante = 5
)

// String devuelve el nombre del estado para respuestas al emisor.
func (e EstadoComprobante) String() string {
	switch e {
	case EstadoNoEncontrado:
		return "No encontrado"
	case EstadoAceptado:
		return "Aceptado"
	case EstadoRechazado:
		return "Rechazado"
	case EstadoEnProceso:
		return "En proceso"
	case EstadoAceptadoCondicional:
		return "Aceptado condicional"
	case EstadoProcesado:
		return "Procesado"
	default:
		return "Desconocido"
	}
}

// Terminal indica si desde este estado no hay transición posible.
func (e EstadoComprobante) Terminal() bool {
	return e == EstadoRechazado || e == EstadoProcesado
}

// transiciones válidas de la máquina de estados. EnProceso es el único
// estado inicial; nada regresa a un estado previo.
var transiciones = map[EstadoComprobante][]EstadoComprobante{
	EstadoEnProceso: {EstadoAceptado, EstadoAceptadoCondicional, EstadoRechazado},
	EstadoAceptado:  {EstadoProcesado},
}

// PuedeTransicionar valida un cambio de estado contra la máquina.
func (e EstadoComprobante) PuedeTransicionar(nuevo EstadoComprobante) bool {
	for _, t := range transiciones[e] {
		if t == nuevo {
			return true
		}
	}
	return false
}

// Comprobante es un e-CF recibido. El TrackID se asigna una sola vez en la
// recepción y nunca se reutiliza; (RncEmisor, ENCF) es único entre los
// comprobantes no rechazados.
type Comprobante struct {
	ID                    string
	TrackID               string
	RncEmisor             string
	ENCF                  string
	TipoECF               int
	RazonSocialEmisor     string
	RncComprador          string
	RazonSocialComprador  string
	MontoTotal            decimal.Decimal
	TotalITBIS            decimal.Decimal
	Estado                EstadoComprobante
	MensajeEstado         string
	FechaEmision          time.Time
	FechaRecepcion        time.Time
	FechaProcesamiento    *time.Time
	XMLOriginal           string // inmutable una vez almacenado
	XMLRespuesta          string // se fija una sola vez al decidir
	NombreArchivoOriginal string
	HuellaXML             string // SHA-256 de la forma canónica C14N del XML
	SecuenciaUtilizada    bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CambiarEstado aplica una transición validada. Los estados terminales
// nunca retroceden.
func (c *Comprobante) CambiarEstado(nuevo EstadoComprobante, mensaje string, ahora time.Time) error {
	if !c.Estado.PuedeTransicionar(nuevo) {
		return domain.ErrTransicionInvalida
	}
	c.Estado = nuevo
	if mensaje != "" {
		c.MensajeEstado = mensaje
	}
	c.FechaProcesamiento = &ahora
	c.UpdatedAt = ahora
	return nil
}

// Aceptado indica aceptación plena o condicional.
func (c *Comprobante) Aceptado() bool {
	return c.Estado == EstadoAceptado || c.Estado == EstadoAceptadoCondicional ||
		c.Estado == EstadoProcesado
}

// Rechazado indica rechazo terminal.
func (c *Comprobante) Rechazado() bool {
	return c.Estado == EstadoRechazado
}

// NumeroReutilizable: un eNCF rechazado sin secuencia consumida no bloquea
// una nueva presentación del mismo número.
func (c *Comprobante) NumeroReutilizable() bool {
	return c.Rechazado() && !c.SecuenciaUtilizada
}
