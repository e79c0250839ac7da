// Package dgii reúne catálogos y reglas normativas DGII (República
// Dominicana) compartidas por dominio e interfaces: tipos de e-CF, códigos
// de respuesta y de error, y validación de RNC.
package dgii

// Tipos de comprobante fiscal electrónico (e-CF).
const (
	TipoFacturaCreditoFiscal     = 31
	TipoFacturaConsumo           = 32
	TipoNotaDebito               = 33
	TipoNotaCredito              = 34
	TipoComprobanteCompras       = 41
	TipoRegistroUnicoIngresos    = 43
	TipoComprobanteGubernamental = 44
	TipoComprobanteExportacion   = 45
	TipoComprobanteImportacion   = 46
	TipoOtrosComprobantes        = 47
)

var nombresTipoECF = map[int]string{
	TipoFacturaCreditoFiscal:     "Factura de Crédito Fiscal Electrónica",
	TipoFacturaConsumo:           "Factura de Consumo Electrónica",
	TipoNotaDebito:               "Nota de Débito Electrónica",
	TipoNotaCredito:              "Nota de Crédito Electrónica",
	TipoComprobanteCompras:       "Comprobante de Compras Electrónico",
	TipoRegistroUnicoIngresos:    "Registro Único de Ingresos Electrónico",
	TipoComprobanteGubernamental: "Comprobante Gubernamental Electrónico",
	TipoComprobanteExportacion:   "Comprobante de Exportaciones Electrónico",
	TipoComprobanteImportacion:   "Comprobante para Pagos al Exterior Electrónico",
	TipoOtrosComprobantes:        "Otros Comprobantes Electrónicos",
}

// EsTipoECFValido indica si el código pertenece al catálogo vigente.
func EsTipoECFValido(tipo int) bool {
	_, ok := nombresTipoECF[tipo]
	return ok
}

// NombreTipoECF devuelve el nombre normativo del tipo, o cadena vacía.
func NombreTipoECF(tipo int) string {
	return nombresTipoECF[tipo]
}
