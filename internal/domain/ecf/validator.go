package ecf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// CamposExtraidos son los datos del e-CF que el pipeline necesita para
// decidir. Se devuelven incluso si la validación global falló, siempre que
// la extracción individual haya sido posible (campos opcionales explícitos
// en lugar de derreferencias sobre un árbol dinámico).
type CamposExtraidos struct {
	ENCF                 string
	TipoECF              int
	MontoTotal           decimal.Decimal
	TotalITBIS           decimal.Decimal
	RncComprador         string
	RazonSocialComprador string
	FechaEmision         time.Time
}

// ResultadoValidacion es el resultado de la validación estructural.
type ResultadoValidacion struct {
	EsValido bool
	Errores  []string // ordenados, uno por elemento faltante o malformado
	Campos   CamposExtraidos
}

// secciones de primer nivel requeridas bajo el elemento raíz ECF.
var seccionesRequeridas = []struct {
	ruta    string
	mensaje string
}{
	{"Encabezado", "El XML debe contener un elemento Encabezado"},
	{"Encabezado/IdDoc", "El Encabezado debe contener IdDoc"},
	{"Encabezado/Emisor", "El Encabezado debe contener Emisor"},
	{"Encabezado/Totales", "El Encabezado debe contener Totales"},
	{"DetallesItems", "El XML debe contener un elemento DetallesItems"},
}

// Validar parsea el payload y verifica la estructura mínima del e-CF.
// Un XML malformado produce un único error estructural, nunca un panic ni un
// error de parseo sin manejar: el pipeline siempre puede armar una respuesta
// de rechazo estructurada.
func Validar(raw []byte) ResultadoValidacion {
	var res ResultadoValidacion

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		res.Errores = append(res.Errores, fmt.Sprintf("Error al parsear XML: %v", err))
		return res
	}

	root := doc.Root()
	if root == nil || root.Tag != "ECF" {
		res.Errores = append(res.Errores, "El XML debe contener un elemento raíz ECF")
		return res
	}

	for _, s := range seccionesRequeridas {
		if root.FindElement(s.ruta) == nil {
			res.Errores = append(res.Errores, s.mensaje)
		}
	}

	// Extracción: se intenta aun con errores estructurales previos, para que
	// el rechazo pueda referenciar el eNCF cuando exista.
	res.Campos = extraer(root)

	if res.Campos.ENCF == "" {
		res.Errores = append(res.Errores, "El IdDoc debe contener un eNCF")
	} else if _, err := ParseNumero(res.Campos.ENCF); err != nil {
		res.Errores = append(res.Errores, fmt.Sprintf("eNCF inválido: %v", err))
	}
	if res.Campos.TipoECF == 0 {
		res.Errores = append(res.Errores, "El IdDoc debe contener un TipoECF")
	}

	res.EsValido = len(res.Errores) == 0
	return res
}

func extraer(root *etree.Element) CamposExtraidos {
	var c CamposExtraidos

	c.ENCF = texto(root, "Encabezado/IdDoc/eNCF")
	if t := texto(root, "Encabezado/IdDoc/TipoECF"); t != "" {
		if n, err := strconv.Atoi(t); err == nil {
			c.TipoECF = n
		}
	}
	c.MontoTotal = montoDecimal(root, "Encabezado/Totales/MontoTotal")
	c.TotalITBIS = montoDecimal(root, "Encabezado/Totales/TotalITBIS")
	c.RncComprador = texto(root, "Encabezado/Comprador/RNCComprador")
	c.RazonSocialComprador = texto(root, "Encabezado/Comprador/RazonSocialComprador")
	if f := texto(root, "Encabezado/Emisor/FechaEmision"); f != "" {
		// El Anexo usa DD-MM-YYYY; se aceptan también fechas ISO.
		for _, layout := range []string{"02-01-2006", "2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, f); err == nil {
				c.FechaEmision = t
				break
			}
		}
	}
	return c
}

func texto(root *etree.Element, ruta string) string {
	el := root.FindElement(ruta)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

func montoDecimal(root *etree.Element, ruta string) decimal.Decimal {
	t := texto(root, ruta)
	if t == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero
	}
	return d
}
