package dto

// AnulacionRangoRequest solicita la anulación de un rango de secuencias.
type AnulacionRangoRequest struct {
	RncEmisor       string `json:"rncEmisor"`
	TipoECF         int    `json:"tipoECF"`
	SecuenciaDesde  string `json:"secuenciaDesde"`
	SecuenciaHasta  string `json:"secuenciaHasta"`
	MotivoAnulacion string `json:"motivoAnulacion"`
}

// AnulacionRangoResponse confirma las secuencias anuladas.
type AnulacionRangoResponse struct {
	RNC                string    `json:"rnc"`
	Codigo             int       `json:"codigo"`
	Estado             string    `json:"estado"`
	SecuenciasAnuladas []string  `json:"secuenciasAnuladas"`
	FechaAnulacion     string    `json:"fechaAnulacion"`
	Mensajes           []Mensaje `json:"mensajes"`
}

// SecuenciaResponse es la proyección de una secuencia para la API.
type SecuenciaResponse struct {
	ID                 string `json:"id"`
	RncEmisor          string `json:"rncEmisor"`
	TipoECF            int    `json:"tipoECF"`
	SecuenciaDesde     string `json:"secuenciaDesde"`
	SecuenciaHasta     string `json:"secuenciaHasta"`
	SecuenciaActual    string `json:"secuenciaActual,omitempty"`
	CantidadAutorizada int    `json:"cantidadAutorizada"`
	CantidadUtilizada  int    `json:"cantidadUtilizada"`
	CantidadDisponible int    `json:"cantidadDisponible"`
	FechaVencimiento   string `json:"fechaVencimiento"`
	Activa             bool   `json:"activa"`
	Anulada            bool   `json:"anulada"`
	MotivoAnulacion    string `json:"motivoAnulacion,omitempty"`
}
