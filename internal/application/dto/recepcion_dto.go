package dto

// RecepcionECFRequest es la entrada del pipeline de recepción. El payload
// llega como buffer opaco más el nombre del archivo; sin supuestos sobre el
// transporte.
type RecepcionECFRequest struct {
	RncEmisor     string
	NombreArchivo string
	Archivo       []byte
}

// RecepcionECFResponse es el resultado de la recepción, con el formato de
// respuesta DGII (trackId, código, estado, mensajes).
type RecepcionECFResponse struct {
	TrackID            string    `json:"trackId"`
	Codigo             int       `json:"codigo"`
	Estado             string    `json:"estado"`
	RNC                string    `json:"rnc,omitempty"`
	ENCF               string    `json:"encf,omitempty"`
	SecuenciaUtilizada bool      `json:"secuenciaUtilizada"`
	FechaRecepcion     string    `json:"fechaRecepcion"`
	Mensajes           []Mensaje `json:"mensajes"`
}
