package dto

// SemillaResponse es el valor de semilla emitido para iniciar sesión.
type SemillaResponse struct {
	Valor string `json:"valor"`
	Fecha string `json:"fecha"`
}

// ValidarSemillaRequest presenta la semilla firmada por el contribuyente.
// La verificación criptográfica de la firma es un colaborador externo; aquí
// solo se valida vigencia y emisor.
type ValidarSemillaRequest struct {
	RNC            string `json:"rnc"`
	SemillaFirmada string `json:"semillaFirmada"`
}

// ValidarSemillaResponse entrega el token de sesión.
type ValidarSemillaResponse struct {
	Token      string `json:"token"`
	Expiracion string `json:"expiracion"`
}
