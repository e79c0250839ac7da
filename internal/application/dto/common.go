package dto

// ErrorResponse es la respuesta genérica de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Mensaje es un mensaje DGII con código normativo.
type Mensaje struct {
	Valor  string `json:"valor"`
	Codigo int    `json:"codigo"`
}
