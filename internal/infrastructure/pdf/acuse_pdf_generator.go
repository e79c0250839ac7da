// Package pdf implementa la representación impresa del Acuse de Recibo
// (ARECF) de un e-CF aceptado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Acuse de Recibo e-CF  │  TrackId + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: RNC + Razón Social                                 │
//	│  COMPROBANTE: eNCF / Tipo / Montos                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO: Aceptado / Aceptado condicional / Procesado        │
//	│  FOOTER: QR con el trackId + Leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/dgii-ecf/internal/application/consulta"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/pkg/dgii"
)

var _ consulta.AcusePDFGenerator = (*MarotoAcuseGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 84, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoAcuseGenerator implementa consulta.AcusePDFGenerator usando Maroto v2.
type MarotoAcuseGenerator struct{}

// NewMarotoAcuseGenerator construye el generador.
func NewMarotoAcuseGenerator() *MarotoAcuseGenerator { return &MarotoAcuseGenerator{} }

// GenerarAcusePDF genera el PDF del acuse y devuelve sus bytes.
func (g *MarotoAcuseGenerator) GenerarAcusePDF(_ context.Context, c *entity.Comprobante) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acuse de Recibo e-CF", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(c))
	m.AddRows(comprobanteRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(estadoRow(c))
	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(c) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y TrackId + fecha de recepción (der).
func headerRow(c *entity.Comprobante) core.Row {
	fecha := c.FechaRecepcion.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACUSE DE RECIBO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante Fiscal Electrónico (e-CF)", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TRACK ID", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(c.TrackID, props.Text{
				Size: 7.5, Align: align.Right, Top: 7,
			}),
			text.New("Recibido: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos del emisor.
func emisorRow(c *entity.Comprobante) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("RNC: %s   |   Razón Social: %s",
				c.RncEmisor,
				nonEmpty(c.RazonSocialEmisor, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// comprobanteRow: identificación fiscal y montos del documento.
func comprobanteRow(c *entity.Comprobante) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New("COMPROBANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("eNCF: "+c.ENCF, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tipo %d - %s", c.TipoECF, dgii.NombreTipoECF(c.TipoECF)), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("MONTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Total: RD$ "+c.MontoTotal.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New("ITBIS: RD$ "+c.TotalITBIS.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// estadoRow: el resultado de la recepción, en grande.
func estadoRow(c *entity.Comprobante) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ESTADO DEL COMPROBANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Estado.String(), props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

// footerRows: QR con el trackId + leyenda.
func footerRows(c *entity.Comprobante) []core.Row {
	return []core.Row{
		row.New(45).Add(
			col.New(4).Add(code.NewQr(c.TrackID, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para consultar\nel estado de este envío.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("ACUSE DE RECIBO\nCOMPROBANTE FISCAL ELECTRÓNICO", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 20,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Este acuse certifica la recepción del comprobante fiscal electrónico "+
					"conforme a la Norma General 01-2020 sobre Facturación Electrónica. "+
					"Conserve este documento como soporte.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
