package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
)

var _ repository.LogTransaccionRepository = (*LogTransaccionRepo)(nil)

// LogTransaccionRepo implementación de LogTransaccionRepository (usable con pool o tx).
type LogTransaccionRepo struct {
	q Querier
}

// NewLogTransaccionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLogTransaccionRepository(q Querier) *LogTransaccionRepo {
	return &LogTransaccionRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *LogTransaccionRepo) Create(ctx context.Context, l *entity.LogTransaccion) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO logs_transacciones (id, rnc, track_id, encf, tipo_operacion,
			nivel, mensaje, contexto, nombre_archivo, tamano_archivo, exito,
			fecha_transaccion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, nullIfEmpty(l.RNC), nullIfEmpty(l.TrackID), nullIfEmpty(l.ENCF),
		l.TipoOperacion, l.Nivel, l.Mensaje, nullIfEmpty(l.Contexto),
		nullIfEmpty(l.NombreArchivo), l.TamanoArchivo, l.Exito, l.FechaTransaccion,
	)
	if err != nil {
		return fmt.Errorf("insert log transaccion: %w", err)
	}
	return nil
}

// ListByTrackID lista la pista de auditoría de un envío.
func (r *LogTransaccionRepo) ListByTrackID(ctx context.Context, trackID string) ([]*entity.LogTransaccion, error) {
	query := `
		SELECT id, COALESCE(rnc, ''), COALESCE(track_id, ''), COALESCE(encf, ''),
		       tipo_operacion, nivel, mensaje, COALESCE(contexto, ''),
		       COALESCE(nombre_archivo, ''), tamano_archivo, exito, fecha_transaccion
		FROM logs_transacciones
		WHERE track_id = $1
		ORDER BY fecha_transaccion`
	rows, err := r.q.Query(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.LogTransaccion
	for rows.Next() {
		var l entity.LogTransaccion
		if err := rows.Scan(
			&l.ID, &l.RNC, &l.TrackID, &l.ENCF,
			&l.TipoOperacion, &l.Nivel, &l.Mensaje, &l.Contexto,
			&l.NombreArchivo, &l.TamanoArchivo, &l.Exito, &l.FechaTransaccion,
		); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
