package dgii

import (
	"errors"
	"fmt"
)

// ErrRNCInvalido indica formato o dígito verificador incorrecto.
var ErrRNCInvalido = errors.New("RNC inválido")

// pesos del dígito verificador para RNC de 9 dígitos (norma DGII, módulo 11).
var pesosRNC = [8]int{7, 9, 8, 6, 5, 4, 3, 2}

// ValidarRNC valida un RNC de 9 dígitos (persona jurídica, con dígito
// verificador módulo 11) o una cédula de 11 dígitos (verificación Luhn).
func ValidarRNC(rnc string) error {
	switch len(rnc) {
	case 9:
		return validarRNC9(rnc)
	case 11:
		return validarCedula(rnc)
	default:
		return fmt.Errorf("%w: debe tener 9 u 11 dígitos, tiene %d", ErrRNCInvalido, len(rnc))
	}
}

func digitos(s string) ([]int, error) {
	ds := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: contiene caracteres no numéricos", ErrRNCInvalido)
		}
		ds[i] = int(r - '0')
	}
	return ds, nil
}

func validarRNC9(rnc string) error {
	ds, err := digitos(rnc)
	if err != nil {
		return err
	}
	sum := 0
	for i, p := range pesosRNC {
		sum += ds[i] * p
	}
	var esperado int
	switch resto := sum % 11; resto {
	case 0:
		esperado = 2
	case 1:
		esperado = 1
	default:
		esperado = 11 - resto
	}
	if ds[8] != esperado {
		return fmt.Errorf("%w: dígito verificador %d, se esperaba %d", ErrRNCInvalido, ds[8], esperado)
	}
	return nil
}

func validarCedula(ced string) error {
	ds, err := digitos(ced)
	if err != nil {
		return err
	}
	sum := 0
	for i := 0; i < 10; i++ {
		v := ds[i]
		if i%2 == 1 {
			v *= 2
			if v > 9 {
				v -= 9
			}
		}
		sum += v
	}
	esperado := (10 - sum%10) % 10
	if ds[10] != esperado {
		return fmt.Errorf("%w: dígito verificador %d, se esperaba %d", ErrRNCInvalido, ds[10], esperado)
	}
	return nil
}
