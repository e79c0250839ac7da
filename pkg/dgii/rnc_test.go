package dgii_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/dgii-ecf/pkg/dgii"
)

// RNC de 9 dígitos: el verificador se calcula con módulo 11 y pesos DGII.
func TestValidarRNC_NueveDigitosValido(t *testing.T) {
	assert.NoError(t, dgii.ValidarRNC("101001577"))
}

func TestValidarRNC_NueveDigitosVerificadorIncorrecto(t *testing.T) {
	err := dgii.ValidarRNC("101001578")
	assert.ErrorIs(t, err, dgii.ErrRNCInvalido)
}

// Cédula de 11 dígitos: verificación Luhn sobre los primeros 10.
func TestValidarRNC_CedulaValida(t *testing.T) {
	assert.NoError(t, dgii.ValidarRNC("00100000009"))
}

func TestValidarRNC_CedulaVerificadorIncorrecto(t *testing.T) {
	err := dgii.ValidarRNC("00100000001")
	assert.ErrorIs(t, err, dgii.ErrRNCInvalido)
}

func TestValidarRNC_LargoInvalido(t *testing.T) {
	for _, rnc := range []string{"", "12345", "1234567890", "123456789012"} {
		assert.ErrorIs(t, dgii.ValidarRNC(rnc), dgii.ErrRNCInvalido, "largo %d", len(rnc))
	}
}

func TestValidarRNC_CaracteresNoNumericos(t *testing.T) {
	assert.ErrorIs(t, dgii.ValidarRNC("10100157A"), dgii.ErrRNCInvalido)
}

func TestEsTipoECFValido(t *testing.T) {
	for _, tipo := range []int{31, 32, 33, 34, 41, 43, 44, 45, 46, 47} {
		assert.True(t, dgii.EsTipoECFValido(tipo), "tipo %d debe ser válido", tipo)
	}
	for _, tipo := range []int{0, 1, 30, 35, 42, 48, 99} {
		assert.False(t, dgii.EsTipoECFValido(tipo), "tipo %d no pertenece al catálogo", tipo)
	}
}

func TestNombreTipoECF(t *testing.T) {
	assert.Equal(t, "Factura de Crédito Fiscal Electrónica", dgii.NombreTipoECF(31))
	assert.Empty(t, dgii.NombreTipoECF(99))
}
