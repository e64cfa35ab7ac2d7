package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apppricing "github.com/servicepros/pricebook-api/internal/application/pricing"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

// Ensure TxRunner implementa el puerto de snapshot del pricing.
var _ apppricing.SnapshotTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSnapshot inicia una transacción REPEATABLE READ de solo lectura y ejecuta
// fn con repos atados a la tx: todas las lecturas del resolver ven el mismo
// snapshot. Rollback garantizado en todos los caminos de salida.
func (r *TxRunner) RunSnapshot(ctx context.Context, fn func(
	svcRepo repository.MasterServiceRepository,
	overrideRepo repository.CompanyServiceRepository,
	laborRepo repository.LaborRateRepository,
	taxRepo repository.TaxRateRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return mapError(err, "begin snapshot")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	svcRepo := NewMasterServiceRepository(tx)
	overrideRepo := NewCompanyServiceRepository(tx)
	laborRepo := NewLaborRateRepository(tx)
	taxRepo := NewTaxRateRepository(tx)

	if err := fn(svcRepo, overrideRepo, laborRepo, taxRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError(err, "commit snapshot")
	}
	return nil
}
