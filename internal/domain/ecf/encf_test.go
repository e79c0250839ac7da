package ecf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/dgii-ecf/internal/domain/ecf"
)

func TestParseNumero_Valido(t *testing.T) {
	n, err := ecf.ParseNumero("0000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = ecf.ParseNumero("1000000000005")
	require.NoError(t, err)
	assert.Equal(t, int64(1000000000005), n)
}

// Los ceros a la izquierda son significativos para el formato: largos
// distintos de 13 se rechazan aunque el valor numérico sea el mismo.
func TestParseNumero_LargoIncorrecto(t *testing.T) {
	for _, encf := range []string{"", "1", "000000000001", "00000000000001"} {
		_, err := ecf.ParseNumero(encf)
		assert.Error(t, err, "largo %d", len(encf))
	}
}

func TestParseNumero_NoNumerico(t *testing.T) {
	_, err := ecf.ParseNumero("E31000000001x")
	assert.Error(t, err)

	_, err = ecf.ParseNumero("00000000000-1")
	assert.Error(t, err)
}

func TestFormatNumero_AnchoFijo(t *testing.T) {
	assert.Equal(t, "0000000000001", ecf.FormatNumero(1))
	assert.Equal(t, "1000000000005", ecf.FormatNumero(1000000000005))
}

// Propiedad round-trip: Format(Parse(x)) == x para todo eNCF bien formado.
func TestParseFormat_RoundTrip(t *testing.T) {
	for _, encf := range []string{"0000000000001", "0000000050000", "9999999999999"} {
		n, err := ecf.ParseNumero(encf)
		require.NoError(t, err)
		assert.Equal(t, encf, ecf.FormatNumero(n))
	}
}
