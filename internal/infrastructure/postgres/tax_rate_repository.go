package postgres

import (
	"context"
	"time"

	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

var _ repository.TaxRateRepository = (*TaxRateRepo)(nil)

// TaxRateRepo implementación del puerto TaxRateRepository sobre PostgreSQL.
type TaxRateRepo struct {
	q Querier
}

// NewTaxRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRateRepository(q Querier) *TaxRateRepo {
	return &TaxRateRepo{q: q}
}

// Set inserta una tasa. El unique (company_id, jurisdiction, effective_from)
// rechaza empates de vigencia en la escritura -> ErrConstraint.
func (r *TaxRateRepo) Set(ctx context.Context, rate *entity.CompanyTaxRate) error {
	query := `
		INSERT INTO company_tax_rates (company_id, jurisdiction, effective_from, rate, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, rate.CompanyID, rate.Jurisdiction, rate.EffectiveFrom, rate.Rate, rate.CreatedAt)
	if err != nil {
		return mapError(err, "insert tax rate")
	}
	return nil
}

// List lista las tasas de la empresa (todas las jurisdicciones), ordenadas por
// jurisdicción y vigencia.
func (r *TaxRateRepo) List(ctx context.Context, companyID string) ([]*entity.CompanyTaxRate, error) {
	query := `
		SELECT company_id, jurisdiction, effective_from, rate, created_at
		FROM company_tax_rates WHERE company_id = $1 ORDER BY jurisdiction, effective_from`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "list tax rates")
	}
	defer rows.Close()
	var list []*entity.CompanyTaxRate
	for rows.Next() {
		var tr entity.CompanyTaxRate
		if err := rows.Scan(&tr.CompanyID, &tr.Jurisdiction, &tr.EffectiveFrom, &tr.Rate, &tr.CreatedAt); err != nil {
			return nil, mapError(err, "scan tax rate")
		}
		list = append(list, &tr)
	}
	return list, rows.Err()
}

// Delete elimina la tasa con jurisdicción y effective_from exactos.
func (r *TaxRateRepo) Delete(ctx context.Context, companyID, jurisdiction string, effectiveFrom time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM company_tax_rates WHERE company_id = $1 AND jurisdiction = $2 AND effective_from = $3`,
		companyID, jurisdiction, effectiveFrom,
	)
	if err != nil {
		return mapError(err, "delete tax rate")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
