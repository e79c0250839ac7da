package ecf_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/dgii-ecf/internal/domain/ecf"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// xmlECF arma un e-CF mínimo bien formado con el eNCF y tipo indicados.
func xmlECF(encf string, tipo int) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ECF>
  <Encabezado>
    <IdDoc>
      <TipoECF>%d</TipoECF>
      <eNCF>%s</eNCF>
    </IdDoc>
    <Emisor>
      <RNCEmisor>101001577</RNCEmisor>
      <FechaEmision>15-03-2026</FechaEmision>
    </Emisor>
    <Comprador>
      <RNCComprador>00100000009</RNCComprador>
      <RazonSocialComprador>Cliente de Prueba SRL</RazonSocialComprador>
    </Comprador>
    <Totales>
      <MontoTotal>1180.00</MontoTotal>
      <TotalITBIS>180.00</TotalITBIS>
    </Totales>
  </Encabezado>
  <DetallesItems>
    <Item>
      <NombreItem>Servicio</NombreItem>
    </Item>
  </DetallesItems>
</ECF>`, tipo, encf))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestValidar_DocumentoValido(t *testing.T) {
	res := ecf.Validar(xmlECF("0000000000001", 31))

	require.True(t, res.EsValido, "errores: %v", res.Errores)
	assert.Empty(t, res.Errores)
	assert.Equal(t, "0000000000001", res.Campos.ENCF)
	assert.Equal(t, 31, res.Campos.TipoECF)
	assert.Equal(t, "1180", res.Campos.MontoTotal.String())
	assert.Equal(t, "180", res.Campos.TotalITBIS.String())
	assert.Equal(t, "00100000009", res.Campos.RncComprador)
	assert.Equal(t, "Cliente de Prueba SRL", res.Campos.RazonSocialComprador)
	assert.Equal(t, "2026-03-15", res.Campos.FechaEmision.Format("2006-01-02"))
}

// Un XML malformado produce un único error estructural, nunca un panic.
func TestValidar_XMLMalformado(t *testing.T) {
	res := ecf.Validar([]byte(`<ECF><Encabezado></ECF>`))

	assert.False(t, res.EsValido)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "Error al parsear XML")
}

func TestValidar_RaizIncorrecta(t *testing.T) {
	res := ecf.Validar([]byte(`<Factura><Encabezado/></Factura>`))

	assert.False(t, res.EsValido)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "raíz ECF")
}

// Cada sección faltante suma su propio error: el emisor recibe la lista
// completa de problemas en una sola respuesta.
func TestValidar_SeccionesFaltantes(t *testing.T) {
	res := ecf.Validar([]byte(`<ECF><Encabezado><IdDoc><TipoECF>31</TipoECF><eNCF>0000000000001</eNCF></IdDoc></Encabezado></ECF>`))

	assert.False(t, res.EsValido)
	assert.GreaterOrEqual(t, len(res.Errores), 3) // Emisor, Totales, DetallesItems
	// El eNCF se extrae igual, para que el rechazo pueda referenciarlo.
	assert.Equal(t, "0000000000001", res.Campos.ENCF)
}

func TestValidar_SinENCF(t *testing.T) {
	res := ecf.Validar([]byte(`<ECF>
		<Encabezado>
			<IdDoc><TipoECF>31</TipoECF></IdDoc>
			<Emisor/><Totales/>
		</Encabezado>
		<DetallesItems/>
	</ECF>`))

	assert.False(t, res.EsValido)
	assert.Contains(t, res.Errores, "El IdDoc debe contener un eNCF")
}

func TestValidar_ENCFConLargoIncorrecto(t *testing.T) {
	res := ecf.Validar(xmlECF("12345", 31))

	assert.False(t, res.EsValido)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "eNCF inválido")
}

func TestValidar_SinTipoECF(t *testing.T) {
	res := ecf.Validar([]byte(`<ECF>
		<Encabezado>
			<IdDoc><eNCF>0000000000001</eNCF></IdDoc>
			<Emisor/><Totales/>
		</Encabezado>
		<DetallesItems/>
	</ECF>`))

	assert.False(t, res.EsValido)
	assert.Contains(t, res.Errores, "El IdDoc debe contener un TipoECF")
}

// Montos ausentes o ilegibles degradan a cero en lugar de abortar.
func TestValidar_MontosAusentes(t *testing.T) {
	res := ecf.Validar([]byte(`<ECF>
		<Encabezado>
			<IdDoc><TipoECF>32</TipoECF><eNCF>0000000000002</eNCF></IdDoc>
			<Emisor/>
			<Totales><MontoTotal>no-numerico</MontoTotal></Totales>
		</Encabezado>
		<DetallesItems/>
	</ECF>`))

	assert.True(t, res.EsValido)
	assert.True(t, res.Campos.MontoTotal.IsZero())
	assert.True(t, res.Campos.TotalITBIS.IsZero())
}

func TestValidar_FechaEmisionISO(t *testing.T) {
	res := ecf.Validar([]byte(`<ECF>
		<Encabezado>
			<IdDoc><TipoECF>31</TipoECF><eNCF>0000000000003</eNCF></IdDoc>
			<Emisor><FechaEmision>2026-03-15</FechaEmision></Emisor>
			<Totales/>
		</Encabezado>
		<DetallesItems/>
	</ECF>`))

	assert.True(t, res.EsValido)
	assert.Equal(t, "2026-03-15", res.Campos.FechaEmision.Format("2006-01-02"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Huella canónica
// ──────────────────────────────────────────────────────────────────────────────

// La huella es determinista y estable frente a diferencias que la forma
// canónica normaliza (orden de atributos).
func TestHuella_Determinista(t *testing.T) {
	doc := xmlECF("0000000000001", 31)

	h1, err := ecf.Huella(doc)
	require.NoError(t, err)
	h2, err := ecf.Huella(doc)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // SHA-256 en hex
}

func TestHuella_DistintaParaContenidoDistinto(t *testing.T) {
	h1, err := ecf.Huella(xmlECF("0000000000001", 31))
	require.NoError(t, err)
	h2, err := ecf.Huella(xmlECF("0000000000002", 31))
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHuella_NormalizaOrdenDeAtributos(t *testing.T) {
	h1, err := ecf.Huella([]byte(`<ECF a="1" b="2"><X/></ECF>`))
	require.NoError(t, err)
	h2, err := ecf.Huella([]byte(`<ECF b="2" a="1"><X/></ECF>`))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}
