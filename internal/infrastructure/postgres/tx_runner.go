package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/dgii-ecf/internal/application/recepcion"
	"github.com/tu-usuario/dgii-ecf/internal/domain/repository"
)

// Ensure TxRunner implements recepcion.TxRunner.
var _ recepcion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRecepcion inicia una transacción, ejecuta fn con los repos de secuencia y
// comprobante atados a la tx y hace Commit o Rollback. La asignación de
// secuencia y el INSERT del comprobante viven o mueren juntos.
func (r *TxRunner) RunRecepcion(ctx context.Context, fn func(
	secRepo repository.SecuenciaRepository,
	compRepo repository.ComprobanteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	secRepo := NewSecuenciaRepository(tx)
	compRepo := NewComprobanteRepository(tx)

	if err := fn(secRepo, compRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
