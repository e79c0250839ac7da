package dto

// ConsultaEstadoResponse es el estado de un comprobante consultado por
// trackId o por (rnc, eNCF).
type ConsultaEstadoResponse struct {
	TrackID            string    `json:"trackId"`
	Codigo             int       `json:"codigo"`
	Estado             string    `json:"estado"`
	RNC                string    `json:"rnc,omitempty"`
	ENCF               string    `json:"encf,omitempty"`
	SecuenciaUtilizada bool      `json:"secuenciaUtilizada"`
	MontoTotal         string    `json:"montoTotal,omitempty"`
	TotalITBIS         string    `json:"totalITBIS,omitempty"`
	FechaRecepcion     string    `json:"fechaRecepcion"`
	FechaProcesamiento string    `json:"fechaProcesamiento,omitempty"`
	Mensajes           []Mensaje `json:"mensajes"`
}

// TrackIDInfo es una fila del listado de envíos por RNC.
type TrackIDInfo struct {
	TrackID        string `json:"trackId"`
	ENCF           string `json:"encf"`
	Estado         string `json:"estado"`
	MontoTotal     string `json:"montoTotal"`
	FechaRecepcion string `json:"fechaRecepcion"`
}

// ConsultaTrackIDsResponse agrupa el listado.
type ConsultaTrackIDsResponse struct {
	TrackIDs       []TrackIDInfo `json:"trackIds"`
	TotalRegistros int           `json:"totalRegistros"`
}
