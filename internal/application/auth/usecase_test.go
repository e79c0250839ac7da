package auth_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/dgii-ecf/internal/application/auth"
	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/dgii-ecf/pkg/jwt"
)

const (
	testSecret = "secreto-de-prueba"
	testRNC    = "101001577"
)

type fakeContribuyenteRepo struct {
	porRnc map[string]*entity.Contribuyente
}

func (f *fakeContribuyenteRepo) Create(_ context.Context, c *entity.Contribuyente) error {
	f.porRnc[c.RNC] = c
	return nil
}

func (f *fakeContribuyenteRepo) FindByRnc(_ context.Context, rnc string) (*entity.Contribuyente, error) {
	return f.porRnc[rnc], nil
}

func (f *fakeContribuyenteRepo) Update(_ context.Context, c *entity.Contribuyente) error {
	f.porRnc[c.RNC] = c
	return nil
}

func nuevoUseCase() (*auth.UseCase, *fakeContribuyenteRepo) {
	repo := &fakeContribuyenteRepo{porRnc: map[string]*entity.Contribuyente{
		testRNC: {RNC: testRNC, RazonSocial: "Emisora de Prueba SRL", Estado: "ACTIVO", Activo: true, EsEmisorElectronico: true},
	}}
	uc := auth.NewUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "dgii-ecf-test"})
	return uc, repo
}

// semillaConTimestamp arma una semilla con el mismo formato que el servicio:
// base64("ts.hmac-sha256-hex(ts)").
func semillaConTimestamp(ts int64) string {
	s := strconv.FormatInt(ts, 10)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(s))
	return base64.StdEncoding.EncodeToString([]byte(s + "." + hex.EncodeToString(mac.Sum(nil))))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El flujo completo: la semilla emitida se canjea por un JWT cuyo RNC es el
// del contribuyente autenticado.
func TestSemillaYValidarSemilla_RoundTrip(t *testing.T) {
	uc, _ := nuevoUseCase()

	semilla, err := uc.Semilla(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, semilla.Valor)
	require.NotEmpty(t, semilla.Fecha)

	resp, err := uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{
		RNC:            testRNC,
		SemillaFirmada: semilla.Valor,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.Expiracion)

	rnc, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, testRNC, rnc)
}

func TestValidarSemilla_CamposVacios(t *testing.T) {
	uc, _ := nuevoUseCase()

	_, err := uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{RNC: testRNC})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{SemillaFirmada: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidarSemilla_SemillaAdulterada(t *testing.T) {
	uc, _ := nuevoUseCase()

	// MAC calculada sobre un timestamp distinto al declarado.
	s := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte("999999"))
	adulterada := base64.StdEncoding.EncodeToString([]byte(s + "." + hex.EncodeToString(mac.Sum(nil))))

	_, err := uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{
		RNC:            testRNC,
		SemillaFirmada: adulterada,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidarSemilla_SemillaNoDecodificable(t *testing.T) {
	uc, _ := nuevoUseCase()

	_, err := uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{
		RNC:            testRNC,
		SemillaFirmada: "%%%no-es-base64%%%",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidarSemilla_SemillaVencida(t *testing.T) {
	uc, _ := nuevoUseCase()
	vieja := semillaConTimestamp(time.Now().Add(-auth.VigenciaSemilla - time.Minute).Unix())

	_, err := uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{
		RNC:            testRNC,
		SemillaFirmada: vieja,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidarSemilla_ContribuyenteInactivo(t *testing.T) {
	uc, repo := nuevoUseCase()
	repo.porRnc[testRNC].Activo = false

	semilla, err := uc.Semilla(context.Background())
	require.NoError(t, err)

	_, err = uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{
		RNC:            testRNC,
		SemillaFirmada: semilla.Valor,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidarSemilla_ContribuyenteInexistente(t *testing.T) {
	uc, _ := nuevoUseCase()

	semilla, err := uc.Semilla(context.Background())
	require.NoError(t, err)

	_, err = uc.ValidarSemilla(context.Background(), dto.ValidarSemillaRequest{
		RNC:            "130000004",
		SemillaFirmada: semilla.Valor,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
