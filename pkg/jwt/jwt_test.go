package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/dgii-ecf/pkg/jwt"
)

const (
	testSecret = "secreto-de-prueba"
	testIssuer = "dgii-ecf"
	testRNC    = "101001577"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, testRNC, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	rnc, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testRNC, rnc)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, testRNC, testIssuer, -1)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(testSecret, testRNC, testIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenBasura(t *testing.T) {
	_, err := jwt.Parse(testSecret, "no.es.un.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", testRNC, testIssuer, 60)
	assert.Error(t, err)
}
