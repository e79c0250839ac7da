package consulta_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/dgii-ecf/internal/application/consulta"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeComprobanteRepo struct {
	comprobantes []*entity.Comprobante
}

func (f *fakeComprobanteRepo) Create(_ context.Context, c *entity.Comprobante) error {
	f.comprobantes = append(f.comprobantes, c)
	return nil
}

func (f *fakeComprobanteRepo) FindByTrackID(_ context.Context, trackID string) (*entity.Comprobante, error) {
	for _, c := range f.comprobantes {
		if c.TrackID == trackID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeComprobanteRepo) FindByRncAndENCF(_ context.Context, rnc, encf string) (*entity.Comprobante, error) {
	for _, c := range f.comprobantes {
		if c.RncEmisor == rnc && c.ENCF == encf && !c.NumeroReutilizable() {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeComprobanteRepo) UpdateEstado(_ context.Context, trackID string, desde, hacia entity.EstadoComprobante, mensaje string) error {
	for _, c := range f.comprobantes {
		if c.TrackID == trackID {
			if c.Estado != desde {
				return domain.ErrTransicionInvalida
			}
			return c.CambiarEstado(hacia, mensaje, time.Now())
		}
	}
	return domain.ErrNotFound
}

func (f *fakeComprobanteRepo) ListTrackIDs(_ context.Context, rnc, encf string) ([]*entity.Comprobante, error) {
	var out []*entity.Comprobante
	for _, c := range f.comprobantes {
		if c.RncEmisor == rnc && (encf == "" || c.ENCF == encf) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePDFGenerator struct {
	ultimo *entity.Comprobante
}

func (f *fakePDFGenerator) GenerarAcusePDF(_ context.Context, c *entity.Comprobante) ([]byte, error) {
	f.ultimo = c
	return []byte("%PDF-1.7 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const rncEmisor = "101001577"

func comprobanteAceptado() *entity.Comprobante {
	return &entity.Comprobante{
		TrackID:            "track-1",
		RncEmisor:          rncEmisor,
		ENCF:               "0000000000001",
		TipoECF:            31,
		MontoTotal:         decimal.NewFromInt(1180),
		TotalITBIS:         decimal.NewFromInt(180),
		Estado:             entity.EstadoAceptado,
		MensajeEstado:      "Comprobante recibido",
		SecuenciaUtilizada: true,
		FechaRecepcion:     time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func nuevoEntorno(comprobantes ...*entity.Comprobante) (*consulta.UseCase, *fakePDFGenerator) {
	repo := &fakeComprobanteRepo{comprobantes: comprobantes}
	pdf := &fakePDFGenerator{}
	return consulta.NewUseCase(repo, pdf), pdf
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsultarEstado
// ──────────────────────────────────────────────────────────────────────────────

func TestConsultarEstado_PorTrackID(t *testing.T) {
	uc, _ := nuevoEntorno(comprobanteAceptado())

	resp, err := uc.ConsultarEstado(context.Background(), "track-1", "", "")
	require.NoError(t, err)

	assert.Equal(t, "track-1", resp.TrackID)
	assert.Equal(t, int(entity.EstadoAceptado), resp.Codigo)
	assert.Equal(t, "Aceptado", resp.Estado)
	assert.Equal(t, "1180.00", resp.MontoTotal)
	assert.Equal(t, "180.00", resp.TotalITBIS)
	assert.True(t, resp.SecuenciaUtilizada)
	require.Len(t, resp.Mensajes, 1)
	assert.Equal(t, "Comprobante recibido", resp.Mensajes[0].Valor)
}

func TestConsultarEstado_PorRncYENCF(t *testing.T) {
	uc, _ := nuevoEntorno(comprobanteAceptado())

	resp, err := uc.ConsultarEstado(context.Background(), "", rncEmisor, "0000000000001")
	require.NoError(t, err)
	assert.Equal(t, "track-1", resp.TrackID)
}

// Un trackId desconocido no es un error: la respuesta es "No encontrado".
func TestConsultarEstado_NoEncontrado(t *testing.T) {
	uc, _ := nuevoEntorno()

	resp, err := uc.ConsultarEstado(context.Background(), "no-existe", "", "")
	require.NoError(t, err)
	assert.Equal(t, int(entity.EstadoNoEncontrado), resp.Codigo)
	assert.Equal(t, "No encontrado", resp.Estado)
}

func TestConsultarEstado_SinCriterio(t *testing.T) {
	uc, _ := nuevoEntorno()

	_, err := uc.ConsultarEstado(context.Background(), "", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// rnc sin encf tampoco es criterio suficiente.
	_, err = uc.ConsultarEstado(context.Background(), "", rncEmisor, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsultarTrackIDs
// ──────────────────────────────────────────────────────────────────────────────

func TestConsultarTrackIDs(t *testing.T) {
	segundo := comprobanteAceptado()
	segundo.TrackID = "track-2"
	segundo.ENCF = "0000000000002"
	uc, _ := nuevoEntorno(comprobanteAceptado(), segundo)

	resp, err := uc.ConsultarTrackIDs(context.Background(), rncEmisor, "")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalRegistros)

	filtrado, err := uc.ConsultarTrackIDs(context.Background(), rncEmisor, "0000000000002")
	require.NoError(t, err)
	require.Equal(t, 1, filtrado.TotalRegistros)
	assert.Equal(t, "track-2", filtrado.TrackIDs[0].TrackID)
	assert.Equal(t, "1180.00", filtrado.TrackIDs[0].MontoTotal)
}

func TestConsultarTrackIDs_RncVacio(t *testing.T) {
	uc, _ := nuevoEntorno()
	_, err := uc.ConsultarTrackIDs(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Acuse de recibo
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerarAcuseRecibo(t *testing.T) {
	uc, _ := nuevoEntorno(comprobanteAceptado())

	xml, err := uc.GenerarAcuseRecibo(context.Background(), "track-1")
	require.NoError(t, err)

	s := string(xml)
	assert.Contains(t, s, "<ARECF>")
	assert.Contains(t, s, "<TrackId>track-1</TrackId>")
	assert.Contains(t, s, "<RNCEmisor>"+rncEmisor+"</RNCEmisor>")
	assert.Contains(t, s, "<eNCF>0000000000001</eNCF>")
	assert.Contains(t, s, "<Estado>Aceptado</Estado>")
}

func TestGenerarAcuseRecibo_NoEncontrado(t *testing.T) {
	uc, _ := nuevoEntorno()
	_, err := uc.GenerarAcuseRecibo(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Solo los comprobantes aceptados tienen acuse.
func TestGenerarAcuseRecibo_RechazadoNoTieneAcuse(t *testing.T) {
	rechazado := comprobanteAceptado()
	rechazado.Estado = entity.EstadoRechazado
	uc, _ := nuevoEntorno(rechazado)

	_, err := uc.GenerarAcuseRecibo(context.Background(), "track-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGenerarAcusePDF(t *testing.T) {
	uc, pdf := nuevoEntorno(comprobanteAceptado())

	out, err := uc.GenerarAcusePDF(context.Background(), "track-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.NotNil(t, pdf.ultimo)
	assert.Equal(t, "track-1", pdf.ultimo.TrackID)
}
