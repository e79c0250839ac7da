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

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación de ComprobanteRepository (usable con pool o tx).
//
// La unicidad de (rnc_emisor, encf) entre comprobantes vigentes la garantiza
// el índice único parcial ux_comprobantes_encf_vigente; los rechazos sin
// secuencia consumida quedan fuera del índice y no bloquean el número.
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

const colsComprobante = `
	id, track_id, rnc_emisor, encf, tipo_ecf,
	COALESCE(razon_social_emisor, ''), COALESCE(rnc_comprador, ''), COALESCE(razon_social_comprador, ''),
	monto_total, total_itbis, estado, COALESCE(mensaje_estado, ''),
	fecha_emision, fecha_recepcion, fecha_procesamiento,
	xml_original, COALESCE(xml_respuesta, ''), COALESCE(nombre_archivo_original, ''),
	COALESCE(huella_xml, ''), secuencia_utilizada, created_at, updated_at`

// Create persiste un comprobante nuevo.
func (r *ComprobanteRepo) Create(ctx context.Context, c *entity.Comprobante) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO comprobantes (id, track_id, rnc_emisor, encf, tipo_ecf,
			razon_social_emisor, rnc_comprador, razon_social_comprador,
			monto_total, total_itbis, estado, mensaje_estado,
			fecha_emision, fecha_recepcion, fecha_procesamiento,
			xml_original, xml_respuesta, nombre_archivo_original,
			huella_xml, secuencia_utilizada, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, now(), now())`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TrackID, c.RncEmisor, c.ENCF, c.TipoECF,
		nullIfEmpty(c.RazonSocialEmisor), nullIfEmpty(c.RncComprador), nullIfEmpty(c.RazonSocialComprador),
		c.MontoTotal, c.TotalITBIS, int(c.Estado), nullIfEmpty(c.MensajeEstado),
		c.FechaEmision, c.FechaRecepcion, c.FechaProcesamiento,
		c.XMLOriginal, nullIfEmpty(c.XMLRespuesta), nullIfEmpty(c.NombreArchivoOriginal),
		nullIfEmpty(c.HuellaXML), c.SecuenciaUtilizada,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

// FindByTrackID busca por el identificador de seguimiento. Devuelve nil si no existe.
func (r *ComprobanteRepo) FindByTrackID(ctx context.Context, trackID string) (*entity.Comprobante, error) {
	query := `SELECT` + colsComprobante + ` FROM comprobantes WHERE track_id = $1`
	c, err := scanComprobante(r.q.QueryRow(ctx, query, trackID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}
	return c, nil
}

// FindByRncAndENCF busca el comprobante vigente para (rnc, eNCF): los
// rechazados sin secuencia consumida no cuentan como ocupantes del número.
func (r *ComprobanteRepo) FindByRncAndENCF(ctx context.Context, rnc, encf string) (*entity.Comprobante, error) {
	query := `SELECT` + colsComprobante + `
		FROM comprobantes
		WHERE rnc_emisor = $1 AND encf = $2
		  AND NOT (estado = $3 AND NOT secuencia_utilizada)
		ORDER BY fecha_recepcion DESC
		LIMIT 1`
	c, err := scanComprobante(r.q.QueryRow(ctx, query, rnc, encf, int(entity.EstadoRechazado)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante por encf: %w", err)
	}
	return c, nil
}

// UpdateEstado aplica la transición con compare-and-set sobre el estado
// actual. Si la fila existe pero ya no está en el estado esperado, la
// transición perdió la carrera y se reporta como inválida.
func (r *ComprobanteRepo) UpdateEstado(ctx context.Context, trackID string, desde, hacia entity.EstadoComprobante, mensaje string) error {
	if !desde.PuedeTransicionar(hacia) {
		return domain.ErrTransicionInvalida
	}
	query := `
		UPDATE comprobantes
		SET estado = $3,
		    mensaje_estado = COALESCE(NULLIF($4, ''), mensaje_estado),
		    fecha_procesamiento = now(),
		    updated_at = now()
		WHERE track_id = $1 AND estado = $2`
	tag, err := r.q.Exec(ctx, query, trackID, int(desde), int(hacia), mensaje)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var existe bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM comprobantes WHERE track_id = $1)`, trackID,
		).Scan(&existe); err != nil {
			return fmt.Errorf("verificar comprobante: %w", err)
		}
		if !existe {
			return domain.ErrNotFound
		}
		return domain.ErrTransicionInvalida
	}
	return nil
}

// ListTrackIDs lista los envíos de un RNC, opcionalmente filtrados por eNCF.
func (r *ComprobanteRepo) ListTrackIDs(ctx context.Context, rnc, encf string) ([]*entity.Comprobante, error) {
	query := `SELECT` + colsComprobante + `
		FROM comprobantes
		WHERE rnc_emisor = $1 AND ($2 = '' OR encf = $2)
		ORDER BY fecha_recepcion DESC`
	rows, err := r.q.Query(ctx, query, rnc, encf)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comprobante
	for rows.Next() {
		c, err := scanComprobante(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanComprobante(row pgxScanner) (*entity.Comprobante, error) {
	var c entity.Comprobante
	var estado int
	err := row.Scan(
		&c.ID, &c.TrackID, &c.RncEmisor, &c.ENCF, &c.TipoECF,
		&c.RazonSocialEmisor, &c.RncComprador, &c.RazonSocialComprador,
		&c.MontoTotal, &c.TotalITBIS, &estado, &c.MensajeEstado,
		&c.FechaEmision, &c.FechaRecepcion, &c.FechaProcesamiento,
		&c.XMLOriginal, &c.XMLRespuesta, &c.NombreArchivoOriginal,
		&c.HuellaXML, &c.SecuenciaUtilizada, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Estado = entity.EstadoComprobante(estado)
	return &c, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
