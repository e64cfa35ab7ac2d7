package pricing

import (
	"context"

	"github.com/servicepros/pricebook-api/internal/domain/pricing"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

// SnapshotTxRunner ejecuta fn con repositorios atados a UNA transacción de solo
// lectura con aislamiento snapshot: todas las lecturas del resolver ven el
// mismo estado, nunca una mezcla pre/post escritura.
type SnapshotTxRunner interface {
	RunSnapshot(ctx context.Context, fn func(
		svcRepo repository.MasterServiceRepository,
		overrideRepo repository.CompanyServiceRepository,
		laborRepo repository.LaborRateRepository,
		taxRepo repository.TaxRateRepository,
	) error) error
}

// QuoteCache memoización opcional de cotizaciones. La implementación versiona
// por empresa: una invalidación hace irrecuperables todas las claves previas.
type QuoteCache interface {
	Get(ctx context.Context, companyID, key string) (*pricing.Quote, bool)
	Put(ctx context.Context, companyID, key string, q *pricing.Quote)
}
