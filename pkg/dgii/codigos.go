package dgii

// Códigos de error DGII incluidos en los mensajes de respuesta.
const (
	// Validación XML
	CodigoXMLMalformado = 2001
	CodigoXSDInvalido   = 2002
	CodigoFirmaInvalida = 2003

	// Negocio
	CodigoRNCInactivo           = 3001
	CodigoSecuenciaVencida      = 3002
	CodigoSecuenciaNoAutorizada = 3003
	CodigoMontoExcedido         = 3004

	// Sistema
	CodigoServicioNoDisponible = 4001
	CodigoTimeout              = 4002
	CodigoErrorInterno         = 4003

	// Éxito
	CodigoOK = 0
)

// Mensajes estándar asociados a los códigos anteriores.
const (
	MensajeXMLMalformado         = "El archivo XML no cumple con la estructura requerida"
	MensajeRNCInactivo           = "El RNC del emisor no está activo o autorizado"
	MensajeSecuenciaVencida      = "La secuencia de eNCF ha vencido"
	MensajeSecuenciaNoAutorizada = "La secuencia no está autorizada para este contribuyente"
	MensajeENCFDuplicado         = "El eNCF ya existe en el sistema"
	MensajeServicioNoDisponible  = "El servicio no está disponible en este momento"
	MensajeErrorInterno          = "Error interno del servidor"
	MensajeRecibido              = "Documento recibido exitosamente"
)

// Límite de tamaño del archivo XML aceptado en recepción.
const MaxTamanoArchivo = 10 * 1024 * 1024 // 10MB
