package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
)

var _ repository.SecuenciaRepository = (*SecuenciaRepo)(nil)

// SecuenciaRepo implementación de SecuenciaRepository (usable con pool o tx).
type SecuenciaRepo struct {
	q Querier
}

// NewSecuenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSecuenciaRepository(q Querier) *SecuenciaRepo {
	return &SecuenciaRepo{q: q}
}

const colsSecuencia = `
	id, rnc_emisor, tipo_ecf, secuencia_desde, secuencia_hasta, secuencia_actual,
	cantidad_autorizada, cantidad_utilizada, fecha_autorizacion, fecha_vencimiento,
	activa, anulada, COALESCE(motivo_anulacion, ''), fecha_anulacion,
	monto_maximo, created_at, updated_at`

// Create registra un nuevo rango autorizado.
func (r *SecuenciaRepo) Create(ctx context.Context, s *entity.Secuencia) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO secuencias (id, rnc_emisor, tipo_ecf, secuencia_desde, secuencia_hasta,
			secuencia_actual, cantidad_autorizada, cantidad_utilizada,
			fecha_autorizacion, fecha_vencimiento, activa, anulada, monto_maximo,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RncEmisor, s.TipoECF, s.SecuenciaDesde, s.SecuenciaHasta,
		s.SecuenciaActual, s.CantidadAutorizada, s.CantidadUtilizada,
		s.FechaAutorizacion, s.FechaVencimiento, s.Activa, s.Anulada, s.MontoMaximo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert secuencia: %w", err)
	}
	return nil
}

// FindByID obtiene una secuencia por su ID. Devuelve nil si no existe.
func (r *SecuenciaRepo) FindByID(ctx context.Context, id string) (*entity.Secuencia, error) {
	query := `SELECT` + colsSecuencia + ` FROM secuencias WHERE id = $1`
	s, err := scanSecuencia(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get secuencia: %w", err)
	}
	return s, nil
}

// ListByRnc lista todas las secuencias de un emisor.
func (r *SecuenciaRepo) ListByRnc(ctx context.Context, rnc string) ([]*entity.Secuencia, error) {
	query := `SELECT` + colsSecuencia + `
		FROM secuencias WHERE rnc_emisor = $1
		ORDER BY tipo_ecf, secuencia_desde`
	rows, err := r.q.Query(ctx, query, rnc)
	if err != nil {
		return nil, fmt.Errorf("list secuencias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Secuencia
	for rows.Next() {
		s, err := scanSecuencia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan secuencia: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CanAllocate verifica sin consumir capacidad ni bloquear filas.
func (r *SecuenciaRepo) CanAllocate(ctx context.Context, rnc string, tipoECF int, numero int64) error {
	_, err := r.elegir(ctx, rnc, tipoECF, numero, false)
	return err
}

// Allocate consume un lugar de la secuencia de forma atómica: bloquea las
// filas candidatas (FOR UPDATE), decide con las reglas de dominio y aplica un
// UPDATE condicionado a que quede capacidad. Debe llamarse dentro de una
// transacción (vía TxRunner); el bloqueo serializa asignaciones concurrentes
// sobre el mismo (rnc, tipoECF).
func (r *SecuenciaRepo) Allocate(ctx context.Context, rnc string, tipoECF int, numero int64) error {
	s, err := r.elegir(ctx, rnc, tipoECF, numero, true)
	if err != nil {
		return err
	}

	query := `
		UPDATE secuencias
		SET cantidad_utilizada = cantidad_utilizada + 1,
		    secuencia_actual   = $2,
		    updated_at         = now()
		WHERE id = $1 AND cantidad_utilizada < cantidad_autorizada`
	tag, err := r.q.Exec(ctx, query, s.ID, numero)
	if err != nil {
		return fmt.Errorf("consumir secuencia: %w", err)
	}
	// Con la fila bloqueada esto no debería ocurrir; el guard queda como
	// última línea de defensa del invariante utilizada <= autorizada.
	if tag.RowsAffected() == 0 {
		return domain.ErrCapacidadAgotada
	}
	return nil
}

// Rollback compensa una asignación cuyo comprobante no llegó a persistirse.
// Con TxRunner no se usa (el rollback de la tx lo cubre); existe para
// implementaciones sin transacción compartida.
func (r *SecuenciaRepo) Rollback(ctx context.Context, rnc string, tipoECF int, numero int64) error {
	query := `
		UPDATE secuencias
		SET cantidad_utilizada = cantidad_utilizada - 1,
		    updated_at         = now()
		WHERE rnc_emisor = $1 AND tipo_ecf = $2
		  AND secuencia_desde <= $3 AND secuencia_hasta >= $3
		  AND cantidad_utilizada > 0`
	if _, err := r.q.Exec(ctx, query, rnc, tipoECF, numero); err != nil {
		return fmt.Errorf("revertir secuencia: %w", err)
	}
	return nil
}

// AnularRango anula las secuencias de (rnc, tipoECF) que solapan [desde, hasta].
func (r *SecuenciaRepo) AnularRango(ctx context.Context, rnc string, tipoECF int, desde, hasta int64, motivo string) ([]*entity.Secuencia, error) {
	query := `
		UPDATE secuencias
		SET anulada = TRUE, motivo_anulacion = $5, fecha_anulacion = now(), updated_at = now()
		WHERE rnc_emisor = $1 AND tipo_ecf = $2
		  AND secuencia_desde <= $4 AND secuencia_hasta >= $3
		  AND NOT anulada
		RETURNING` + colsSecuencia
	rows, err := r.q.Query(ctx, query, rnc, tipoECF, desde, hasta, motivo)
	if err != nil {
		return nil, fmt.Errorf("anular secuencias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Secuencia
	for rows.Next() {
		s, err := scanSecuencia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan secuencia anulada: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Reactivar revierte la anulación administrativa de una secuencia.
func (r *SecuenciaRepo) Reactivar(ctx context.Context, id string) error {
	query := `
		UPDATE secuencias
		SET anulada = FALSE, motivo_anulacion = NULL, fecha_anulacion = NULL, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("reactivar secuencia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// elegir carga las secuencias candidatas de (rnc, tipoECF) y aplica la regla
// de decisión de dominio para cada una. Devuelve la primera asignable o el
// error de asignación más específico: el de una secuencia cuyo rango contiene
// el número pesa más que "fuera de rango" genérico.
func (r *SecuenciaRepo) elegir(ctx context.Context, rnc string, tipoECF int, numero int64, forUpdate bool) (*entity.Secuencia, error) {
	query := `SELECT` + colsSecuencia + `
		FROM secuencias
		WHERE rnc_emisor = $1 AND tipo_ecf = $2
		ORDER BY secuencia_desde`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(ctx, query, rnc, tipoECF)
	if err != nil {
		return nil, fmt.Errorf("buscar secuencias: %w", err)
	}
	defer rows.Close()

	ahora := time.Now()
	var errContiene error
	encontradas := false
	for rows.Next() {
		s, err := scanSecuencia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan secuencia: %w", err)
		}
		encontradas = true
		evalErr := s.Evaluar(numero, ahora)
		if evalErr == nil {
			rows.Close()
			return s, nil
		}
		if s.Solapa(numero, numero) && errContiene == nil {
			errContiene = evalErr
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar secuencias: %w", err)
	}
	if errContiene != nil {
		return nil, errContiene
	}
	if !encontradas {
		return nil, domain.ErrSecuenciaNoActiva
	}
	return nil, domain.ErrNumeroFueraDeRango
}

// ── helpers ───────────────────────────────────────────────────────────────────

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar scanSecuencia.
type pgxScanner interface {
	Scan(dest ...any) error
}

func scanSecuencia(row pgxScanner) (*entity.Secuencia, error) {
	var s entity.Secuencia
	err := row.Scan(
		&s.ID, &s.RncEmisor, &s.TipoECF, &s.SecuenciaDesde, &s.SecuenciaHasta, &s.SecuenciaActual,
		&s.CantidadAutorizada, &s.CantidadUtilizada, &s.FechaAutorizacion, &s.FechaVencimiento,
		&s.Activa, &s.Anulada, &s.MotivoAnulacion, &s.FechaAnulacion,
		&s.MontoMaximo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
