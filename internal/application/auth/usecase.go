// Package auth implementa el flujo semilla/validarsemilla con el que un
// contribuyente obtiene su token de sesión. La verificación criptográfica de
// la semilla firmada es un colaborador externo (certificados digitales);
// aquí se valida integridad, vigencia y habilitación del RNC.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/dgii-ecf/internal/application/dto"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/dgii-ecf/pkg/jwt"
)

// VigenciaSemilla: ventana en la que una semilla emitida puede canjearse.
const VigenciaSemilla = 10 * time.Minute

// JWTConfig parámetros del token de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase emite semillas y tokens de sesión.
type UseCase struct {
	contribuyenteRepo repository.ContribuyenteRepository
	jwtCfg            JWTConfig
}

// NewUseCase construye el servicio de autenticación.
func NewUseCase(contribuyenteRepo repository.ContribuyenteRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{contribuyenteRepo: contribuyenteRepo, jwtCfg: jwtCfg}
}

// Semilla emite un valor opaco ligado al instante de emisión. El
// contribuyente debe devolverlo firmado dentro de la ventana de vigencia.
func (uc *UseCase) Semilla(_ context.Context) (*dto.SemillaResponse, error) {
	ahora := time.Now()
	valor := uc.armarSemilla(ahora)
	return &dto.SemillaResponse{
		Valor: valor,
		Fecha: ahora.Format(time.RFC3339),
	}, nil
}

// ValidarSemilla canjea la semilla por un JWT si la semilla es íntegra y
// vigente y el RNC está habilitado como emisor o receptor electrónico.
func (uc *UseCase) ValidarSemilla(ctx context.Context, req dto.ValidarSemillaRequest) (*dto.ValidarSemillaResponse, error) {
	if req.RNC == "" || req.SemillaFirmada == "" {
		return nil, domain.ErrInvalidInput
	}
	emitida, err := uc.abrirSemilla(req.SemillaFirmada)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if time.Since(emitida) > VigenciaSemilla {
		return nil, fmt.Errorf("%w: semilla vencida", domain.ErrUnauthorized)
	}

	contribuyente, err := uc.contribuyenteRepo.FindByRnc(ctx, req.RNC)
	if err != nil {
		return nil, fmt.Errorf("consultar contribuyente: %w", err)
	}
	if contribuyente == nil || !contribuyente.EstaActivo() {
		return nil, domain.ErrUnauthorized
	}

	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, req.RNC, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	expira := time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	return &dto.ValidarSemillaResponse{
		Token:      token,
		Expiracion: expira.Format(time.RFC3339),
	}, nil
}

// armarSemilla produce "ts.mac" con MAC HMAC-SHA256 sobre el timestamp.
func (uc *UseCase) armarSemilla(ahora time.Time) string {
	ts := strconv.FormatInt(ahora.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(uc.jwtCfg.Secret))
	mac.Write([]byte(ts))
	payload := ts + "." + hex.EncodeToString(mac.Sum(nil))
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// abrirSemilla verifica la MAC y devuelve el instante de emisión. La firma
// digital del contribuyente sobre la semilla ya fue verificada aguas arriba.
func (uc *UseCase) abrirSemilla(semilla string) (time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(semilla)
	if err != nil {
		return time.Time{}, fmt.Errorf("semilla no decodificable")
	}
	parts := strings.SplitN(string(raw), ".", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("semilla malformada")
	}
	mac := hmac.New(sha256.New, []byte(uc.jwtCfg.Secret))
	mac.Write([]byte(parts[0]))
	esperado := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(esperado), []byte(parts[1])) {
		return time.Time{}, fmt.Errorf("semilla adulterada")
	}
	unix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("semilla malformada")
	}
	return time.Unix(unix, 0), nil
}
