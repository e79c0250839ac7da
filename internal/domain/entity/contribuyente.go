package entity

import "time"

// Contribuyente es una entrada del directorio de emisores/receptores
// electrónicos. El pipeline solo consulta PuedeEmitir; el mantenimiento del
// directorio es un proceso externo (padrón DGII).
type Contribuyente struct {
	ID                    string
	RNC                   string
	RazonSocial           string
	NombreComercial       string
	Estado                string // "ACTIVO" | "INACTIVO" | "SUSPENDIDO"
	Activo                bool
	EsEmisorElectronico   bool
	EsReceptorElectronico bool
	FechaActualizacion    time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// EstaActivo requiere el flag y el estado del padrón en conjunto.
func (c *Contribuyente) EstaActivo() bool {
	return c.Activo && c.Estado == "ACTIVO"
}

// PuedeEmitir indica si el contribuyente está habilitado como emisor
// electrónico. "No existe" y "existe pero no habilitado" son el mismo
// rechazo para quien envía.
func (c *Contribuyente) PuedeEmitir() bool {
	return c.EstaActivo() && c.EsEmisorElectronico
}

// PuedeRecibir indica habilitación como receptor electrónico.
func (c *Contribuyente) PuedeRecibir() bool {
	return c.EstaActivo() && c.EsReceptorElectronico
}
