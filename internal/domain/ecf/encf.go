// Package ecf contiene la validación estructural de documentos e-CF y el
// manejo del número de comprobante fiscal electrónico (eNCF). No tiene
// efectos secundarios: recibe bytes y devuelve resultados tipados.
package ecf

import (
	"fmt"
	"strconv"
)

// LargoENCF: el eNCF es una cadena numérica de ancho fijo. Los ceros a la
// izquierda son significativos para el formato pero no para el orden: la
// pertenencia al rango se compara sobre el valor numérico completo.
const LargoENCF = 13

// ParseNumero valida el formato del eNCF y devuelve su valor numérico.
func ParseNumero(encf string) (int64, error) {
	if len(encf) != LargoENCF {
		return 0, fmt.Errorf("eNCF debe tener %d dígitos, tiene %d", LargoENCF, len(encf))
	}
	for _, r := range encf {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("eNCF contiene caracteres no numéricos")
		}
	}
	n, err := strconv.ParseInt(encf, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("eNCF no convertible: %w", err)
	}
	return n, nil
}

// FormatNumero devuelve la representación de ancho fijo de un número de
// secuencia (rellena con ceros a la izquierda).
func FormatNumero(n int64) string {
	return fmt.Sprintf("%0*d", LargoENCF, n)
}
