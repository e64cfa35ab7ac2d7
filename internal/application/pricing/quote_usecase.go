package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	domainpricing "github.com/servicepros/pricebook-api/internal/domain/pricing"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
	"github.com/servicepros/pricebook-api/internal/domain/tenancy"
	"github.com/servicepros/pricebook-api/internal/infrastructure/metrics"
)

// storeRetryBackoff espera antes del único reintento ante ErrStoreUnavailable.
const storeRetryBackoff = 100 * time.Millisecond

// QuoteUseCase fachada de cotización: arma el snapshot transaccional, aplica la
// cadena de fallback de tasas y delega el cálculo al resolver puro.
type QuoteUseCase struct {
	tx             SnapshotTxRunner
	guard          *tenancy.Guard
	cache          QuoteCache // nil = sin memoización
	defaultTaxRate decimal.Decimal
	mode           domainpricing.RoundingMode
}

// NewQuoteUseCase construye la fachada de cotización.
func NewQuoteUseCase(tx SnapshotTxRunner, guard *tenancy.Guard, cache QuoteCache, defaultTaxRate decimal.Decimal, mode domainpricing.RoundingMode) *QuoteUseCase {
	return &QuoteUseCase{tx: tx, guard: guard, cache: cache, defaultTaxRate: defaultTaxRate, mode: mode}
}

// Quote resuelve la cotización de un servicio para la empresa del scope.
// Dentro de una sola llamada, ErrStoreUnavailable se reintenta una vez con
// backoff; el resto de errores sube sin tocar.
func (uc *QuoteUseCase) Quote(ctx context.Context, scope tenancy.Scope, companyID, serviceCode string, qty decimal.Decimal, asOf time.Time, jurisdiction string) (*domainpricing.Quote, error) {
	if err := uc.guard.CheckRead(scope, companyID); err != nil {
		return nil, err
	}
	if qty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	asOf = asOf.UTC()

	cacheKey := quoteCacheKey(serviceCode, qty, asOf, jurisdiction)
	if uc.cache != nil {
		if q, ok := uc.cache.Get(ctx, companyID, cacheKey); ok {
			metrics.QuoteCacheHits.Inc()
			return q, nil
		}
	}

	var quote *domainpricing.Quote
	err := uc.runSnapshotRetry(ctx, func(
		svcRepo repository.MasterServiceRepository,
		overrideRepo repository.CompanyServiceRepository,
		laborRepo repository.LaborRateRepository,
		taxRepo repository.TaxRateRepository,
	) error {
		snap, err := uc.loadSnapshot(ctx, svcRepo, overrideRepo, laborRepo, taxRepo, companyID, serviceCode, asOf, jurisdiction)
		if err != nil {
			return err
		}
		quote, err = domainpricing.Resolve(*snap, domainpricing.Request{Quantity: qty, AsOf: asOf, Jurisdiction: jurisdiction}, uc.mode)
		return err
	})
	if err != nil {
		metrics.QuoteFailures.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}
	metrics.QuotesResolved.Inc()

	if uc.cache != nil {
		uc.cache.Put(ctx, companyID, cacheKey, quote)
	}
	return quote, nil
}

// Recalculate cotiza varios servicios bajo UN único snapshot de lectura: todos
// los items ven el mismo estado del catálogo, overlay y tarifas. Los fallos por
// servicio se reportan item a item sin abortar el batch.
func (uc *QuoteUseCase) Recalculate(ctx context.Context, scope tenancy.Scope, companyID string, codes []string, qty decimal.Decimal, asOf time.Time, jurisdiction string) (*dto.RecalculateResponse, error) {
	if err := uc.guard.CheckRead(scope, companyID); err != nil {
		return nil, err
	}
	if len(codes) == 0 || qty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	asOf = asOf.UTC()

	out := &dto.RecalculateResponse{AsOf: asOf, Items: make([]dto.RecalculateItem, 0, len(codes))}
	err := uc.runSnapshotRetry(ctx, func(
		svcRepo repository.MasterServiceRepository,
		overrideRepo repository.CompanyServiceRepository,
		laborRepo repository.LaborRateRepository,
		taxRepo repository.TaxRateRepository,
	) error {
		// Tarifas: una sola lectura por batch, compartida por todos los items.
		laborRate, taxRate, err := uc.loadRates(ctx, laborRepo, taxRepo, companyID, asOf, jurisdiction)
		if err != nil {
			return err
		}
		for _, code := range codes {
			item := dto.RecalculateItem{ServiceCode: code}
			svc, err := svcRepo.GetByCode(ctx, code)
			if err != nil {
				return err
			}
			override, err := overrideRepo.Get(ctx, companyID, code)
			if err != nil {
				return err
			}
			snap := domainpricing.Snapshot{Service: svc, Override: override, LaborRate: laborRate, TaxRate: taxRate}
			q, rerr := domainpricing.Resolve(snap, domainpricing.Request{Quantity: qty, AsOf: asOf, Jurisdiction: jurisdiction}, uc.mode)
			if rerr != nil {
				item.Error = errorKind(rerr)
				metrics.QuoteFailures.WithLabelValues(item.Error).Inc()
			} else {
				item.Quote = q
				metrics.QuotesResolved.Inc()
			}
			out.Items = append(out.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// loadSnapshot lecturas O(1) del resolver: servicio, override y las dos tarifas.
func (uc *QuoteUseCase) loadSnapshot(
	ctx context.Context,
	svcRepo repository.MasterServiceRepository,
	overrideRepo repository.CompanyServiceRepository,
	laborRepo repository.LaborRateRepository,
	taxRepo repository.TaxRateRepository,
	companyID, serviceCode string,
	asOf time.Time,
	jurisdiction string,
) (*domainpricing.Snapshot, error) {
	svc, err := svcRepo.GetByCode(ctx, serviceCode)
	if err != nil {
		return nil, err
	}
	override, err := overrideRepo.Get(ctx, companyID, serviceCode)
	if err != nil {
		return nil, err
	}
	laborRate, taxRate, err := uc.loadRates(ctx, laborRepo, taxRepo, companyID, asOf, jurisdiction)
	if err != nil {
		return nil, err
	}
	return &domainpricing.Snapshot{Service: svc, Override: override, LaborRate: laborRate, TaxRate: taxRate}, nil
}

// loadRates carga las secuencias de tarifas de la empresa y resuelve la
// vigente en asOf con búsqueda binaria (pricing.RateSchedule). Mano de obra
// ausente = 0 (sin cargo); la tasa de impuesto cae por su cadena de fallback:
// jurisdicción pedida -> jurisdicción por defecto ("") -> tasa configurada del
// deployment.
func (uc *QuoteUseCase) loadRates(
	ctx context.Context,
	laborRepo repository.LaborRateRepository,
	taxRepo repository.TaxRateRepository,
	companyID string,
	asOf time.Time,
	jurisdiction string,
) (labor, tax decimal.Decimal, err error) {
	laborRows, err := laborRepo.List(ctx, companyID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	laborPoints := make([]domainpricing.RatePoint, 0, len(laborRows))
	for _, row := range laborRows {
		laborPoints = append(laborPoints, domainpricing.RatePoint{EffectiveFrom: row.EffectiveFrom, Rate: row.RatePerHour})
	}
	labor, ok := domainpricing.NewRateSchedule(laborPoints).At(asOf)
	if !ok {
		labor = decimal.Zero
	}

	taxRows, err := taxRepo.List(ctx, companyID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	byJurisdiction := map[string][]domainpricing.RatePoint{}
	for _, row := range taxRows {
		byJurisdiction[row.Jurisdiction] = append(byJurisdiction[row.Jurisdiction],
			domainpricing.RatePoint{EffectiveFrom: row.EffectiveFrom, Rate: row.Rate})
	}
	tax, ok = domainpricing.NewRateSchedule(byJurisdiction[jurisdiction]).At(asOf)
	if !ok && jurisdiction != "" {
		tax, ok = domainpricing.NewRateSchedule(byJurisdiction[entity.DefaultJurisdiction]).At(asOf)
	}
	if !ok {
		tax = uc.defaultTaxRate
	}
	return labor, tax, nil
}

// runSnapshotRetry ejecuta el snapshot y reintenta UNA vez si el store no
// estuvo disponible. Conflict y el resto suben al caller.
func (uc *QuoteUseCase) runSnapshotRetry(ctx context.Context, fn func(
	repository.MasterServiceRepository,
	repository.CompanyServiceRepository,
	repository.LaborRateRepository,
	repository.TaxRateRepository,
) error) error {
	err := uc.tx.RunSnapshot(ctx, fn)
	if err != nil && errors.Is(err, domain.ErrStoreUnavailable) {
		select {
		case <-ctx.Done():
			return domain.ErrTimeout
		case <-time.After(storeRetryBackoff):
		}
		err = uc.tx.RunSnapshot(ctx, fn)
	}
	return err
}

// quoteCacheKey clave estable por parámetros de cotización. El as_of completo
// forma parte de la clave: cachear por día serviría resultados obsoletos cuando
// una tarifa entra en vigencia a mitad de día.
func quoteCacheKey(serviceCode string, qty decimal.Decimal, asOf time.Time, jurisdiction string) string {
	return fmt.Sprintf("%s:%s:%d:%s", serviceCode, qty.String(), asOf.Unix(), jurisdiction)
}

// errorKind código estable por tipo de error (para métricas y batch items).
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrServiceUnknown):
		return "SERVICE_UNKNOWN"
	case errors.Is(err, domain.ErrServiceInactive):
		return "SERVICE_INACTIVE"
	case errors.Is(err, domain.ErrServiceHidden):
		return "SERVICE_HIDDEN"
	case errors.Is(err, domain.ErrScopeViolation):
		return "SCOPE_VIOLATION"
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		return "CONFLICT"
	case errors.Is(err, domain.ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "STORE_UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}
