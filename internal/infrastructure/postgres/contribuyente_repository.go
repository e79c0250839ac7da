package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/dgii-ecf/internal/domain"
	"github.com/tu-usuario/dgii-ecf/internal/domain/entity"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
)

var _ repository.ContribuyenteRepository = (*ContribuyenteRepo)(nil)

// ContribuyenteRepo implementación de ContribuyenteRepository (usable con pool o tx).
type ContribuyenteRepo struct {
	q Querier
}

// NewContribuyenteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContribuyenteRepository(q Querier) *ContribuyenteRepo {
	return &ContribuyenteRepo{q: q}
}

// Create registra un contribuyente en el directorio.
func (r *ContribuyenteRepo) Create(ctx context.Context, c *entity.Contribuyente) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO contribuyentes (id, rnc, razon_social, nombre_comercial, estado,
			activo, es_emisor_electronico, es_receptor_electronico,
			fecha_actualizacion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RNC, c.RazonSocial, nullIfEmpty(c.NombreComercial), c.Estado,
		c.Activo, c.EsEmisorElectronico, c.EsReceptorElectronico, c.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contribuyente: %w", err)
	}
	return nil
}

// FindByRnc busca un contribuyente por RNC. Devuelve nil si no existe.
func (r *ContribuyenteRepo) FindByRnc(ctx context.Context, rnc string) (*entity.Contribuyente, error) {
	query := `
		SELECT id, rnc, razon_social, COALESCE(nombre_comercial, ''), estado,
		       activo, es_emisor_electronico, es_receptor_electronico,
		       fecha_actualizacion, created_at, updated_at
		FROM contribuyentes WHERE rnc = $1`
	var c entity.Contribuyente
	err := r.q.QueryRow(ctx, query, rnc).Scan(
		&c.ID, &c.RNC, &c.RazonSocial, &c.NombreComercial, &c.Estado,
		&c.Activo, &c.EsEmisorElectronico, &c.EsReceptorElectronico,
		&c.FechaActualizacion, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contribuyente: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos del padrón para un contribuyente existente.
func (r *ContribuyenteRepo) Update(ctx context.Context, c *entity.Contribuyente) error {
	query := `
		UPDATE contribuyentes
		SET razon_social            = $2,
		    nombre_comercial        = $3,
		    estado                  = $4,
		    activo                  = $5,
		    es_emisor_electronico   = $6,
		    es_receptor_electronico = $7,
		    fecha_actualizacion     = $8,
		    updated_at              = now()
		WHERE rnc = $1`
	tag, err := r.q.Exec(ctx, query,
		c.RNC, c.RazonSocial, nullIfEmpty(c.NombreComercial), c.Estado,
		c.Activo, c.EsEmisorElectronico, c.EsReceptorElectronico, c.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update contribuyente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
