package postgres

import (
	"context"
	"time"

	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

var _ repository.LaborRateRepository = (*LaborRateRepo)(nil)

// LaborRateRepo implementación del puerto LaborRateRepository sobre PostgreSQL.
type LaborRateRepo struct {
	q Querier
}

// NewLaborRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLaborRateRepository(q Querier) *LaborRateRepo {
	return &LaborRateRepo{q: q}
}

// Set inserta una tarifa. El unique (company_id, effective_from) rechaza
// empates de vigencia en la escritura -> ErrConstraint.
func (r *LaborRateRepo) Set(ctx context.Context, rate *entity.CompanyLaborRate) error {
	query := `
		INSERT INTO company_labor_rates (company_id, effective_from, rate_per_hour, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, rate.CompanyID, rate.EffectiveFrom, rate.RatePerHour, rate.CreatedAt)
	if err != nil {
		return mapError(err, "insert labor rate")
	}
	return nil
}

// List lista las tarifas de la empresa ordenadas por vigencia ascendente.
func (r *LaborRateRepo) List(ctx context.Context, companyID string) ([]*entity.CompanyLaborRate, error) {
	query := `
		SELECT company_id, effective_from, rate_per_hour, created_at
		FROM company_labor_rates WHERE company_id = $1 ORDER BY effective_from`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "list labor rates")
	}
	defer rows.Close()
	var list []*entity.CompanyLaborRate
	for rows.Next() {
		var lr entity.CompanyLaborRate
		if err := rows.Scan(&lr.CompanyID, &lr.EffectiveFrom, &lr.RatePerHour, &lr.CreatedAt); err != nil {
			return nil, mapError(err, "scan labor rate")
		}
		list = append(list, &lr)
	}
	return list, rows.Err()
}

// Delete elimina la tarifa con effective_from exacto.
func (r *LaborRateRepo) Delete(ctx context.Context, companyID string, effectiveFrom time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM company_labor_rates WHERE company_id = $1 AND effective_from = $2`,
		companyID, effectiveFrom,
	)
	if err != nil {
		return mapError(err, "delete labor rate")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
