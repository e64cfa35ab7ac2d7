package repository

import (
	"context"
	"time"

	"github.com/servicepros/pricebook-api/internal/domain/entity"
)

// CompanyServiceRepository puerto para los overrides de servicio por empresa.
type CompanyServiceRepository interface {
	Get(ctx context.Context, companyID, serviceCode string) (*entity.CompanyService, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyService, error)
	Create(ctx context.Context, cs *entity.CompanyService) error
	// Update aplica concurrencia optimista: prevUpdatedAt debe coincidir con la
	// fila persistida o retorna ErrConflict.
	Update(ctx context.Context, cs *entity.CompanyService, prevUpdatedAt time.Time) error
	Delete(ctx context.Context, companyID, serviceCode string) error
	// ExistsForService indica si ALGUNA empresa referencia el servicio; congela
	// el base_price maestro.
	ExistsForService(ctx context.Context, serviceCode string) (bool, error)
}

// LaborRateRepository puerto para tarifas de mano de obra con vigencia por
// fechas. La resolución "tarifa vigente en t" no vive aquí: el resolver arma un
// pricing.RateSchedule con List y busca en memoria.
type LaborRateRepository interface {
	Set(ctx context.Context, r *entity.CompanyLaborRate) error
	// List devuelve todas las tarifas de la empresa ordenadas por effective_from.
	List(ctx context.Context, companyID string) ([]*entity.CompanyLaborRate, error)
	Delete(ctx context.Context, companyID string, effectiveFrom time.Time) error
}

// TaxRateRepository puerto para tasas de impuesto con vigencia y jurisdicción.
type TaxRateRepository interface {
	Set(ctx context.Context, r *entity.CompanyTaxRate) error
	List(ctx context.Context, companyID string) ([]*entity.CompanyTaxRate, error)
	Delete(ctx context.Context, companyID, jurisdiction string, effectiveFrom time.Time) error
}
