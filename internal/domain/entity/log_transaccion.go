package entity

import (
	"encoding/json"
	"time"
)

// LogTransaccion es una entrada de la pista de auditoría. Su persistencia es
// fire-and-forget: una falla al grabar auditoría nunca cambia la decisión de
// negocio del pipeline.
type LogTransaccion struct {
	ID               string
	RNC              string
	TrackID          string
	ENCF             string
	TipoOperacion    string // "recepcion" | "consulta" | "anulacion" | "aprobacion"
	Nivel            string // "info" | "warn" | "error"
	Mensaje          string
	Contexto         string // JSON serializado
	NombreArchivo    string
	TamanoArchivo    int
	Exito            bool
	FechaTransaccion time.Time
}

// NuevoLogInfo crea una entrada informativa con contexto serializado.
func NuevoLogInfo(operacion, mensaje string, contexto map[string]any, rnc, trackID string) *LogTransaccion {
	return nuevoLog(operacion, "info", mensaje, contexto, rnc, trackID, true)
}

// NuevoLogError crea una entrada de error.
func NuevoLogError(operacion, mensaje string, contexto map[string]any, rnc, trackID string) *LogTransaccion {
	return nuevoLog(operacion, "error", mensaje, contexto, rnc, trackID, false)
}

func nuevoLog(operacion, nivel, mensaje string, contexto map[string]any, rnc, trackID string, exito bool) *LogTransaccion {
	ctxJSON := ""
	if len(contexto) > 0 {
		if b, err := json.Marshal(contexto); err == nil {
			ctxJSON = string(b)
		}
	}
	return &LogTransaccion{
		RNC:              rnc,
		TrackID:          trackID,
		TipoOperacion:    operacion,
		Nivel:            nivel,
		Mensaje:          mensaje,
		Contexto:         ctxJSON,
		Exito:            exito,
		FechaTransaccion: time.Now(),
	}
}

// ConArchivo agrega los datos del archivo recibido.
func (l *LogTransaccion) ConArchivo(nombre string, tamano int) *LogTransaccion {
	l.NombreArchivo = nombre
	l.TamanoArchivo = tamano
	return l
}

// ConENCF agrega el eNCF una vez extraído.
func (l *LogTransaccion) ConENCF(encf string) *LogTransaccion {
	l.ENCF = encf
	return l
}
