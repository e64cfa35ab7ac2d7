package overlay

import (
	"context"
	"errors"
	"time"

	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
	"github.com/servicepros/pricebook-api/internal/domain/tenancy"
)

// UseCase CRUD del overlay por empresa: overrides de servicio y tarifas
// (mano de obra e impuestos) con vigencia por fechas. Todas las operaciones
// pasan por el Guard de tenencia; toda escritura invalida el cache de
// cotizaciones de la empresa.
type UseCase struct {
	overrideRepo repository.CompanyServiceRepository
	laborRepo    repository.LaborRateRepository
	taxRepo      repository.TaxRateRepository
	svcRepo      repository.MasterServiceRepository
	guard        *tenancy.Guard
	invalidator  QuoteInvalidator // puede ser nil (cache deshabilitado)
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	overrideRepo repository.CompanyServiceRepository,
	laborRepo repository.LaborRateRepository,
	taxRepo repository.TaxRateRepository,
	svcRepo repository.MasterServiceRepository,
	guard *tenancy.Guard,
	invalidator QuoteInvalidator,
) *UseCase {
	return &UseCase{
		overrideRepo: overrideRepo,
		laborRepo:    laborRepo,
		taxRepo:      taxRepo,
		svcRepo:      svcRepo,
		guard:        guard,
		invalidator:  invalidator,
	}
}

// GetOverride devuelve el override de un servicio para la empresa, o ErrNotFound.
func (uc *UseCase) GetOverride(ctx context.Context, scope tenancy.Scope, companyID, serviceCode string) (*dto.OverrideResponse, error) {
	if err := uc.guard.CheckRead(scope, companyID); err != nil {
		return nil, err
	}
	row, err := uc.overrideRepo.Get(ctx, companyID, serviceCode)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	out := toOverrideResponse(row)
	return &out, nil
}

// ListOverrides devuelve todas las desviaciones de la empresa respecto al maestro.
func (uc *UseCase) ListOverrides(ctx context.Context, scope tenancy.Scope, companyID string) (*dto.OverrideListResponse, error) {
	if err := uc.guard.CheckRead(scope, companyID); err != nil {
		return nil, err
	}
	list, err := uc.overrideRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OverrideResponse, 0, len(list))
	for _, row := range list {
		items = append(items, toOverrideResponse(row))
	}
	return &dto.OverrideListResponse{Items: items}, nil
}

// SetOverride upsert del override. Valida tipo y rango del ajuste y que el
// serviceCode exista en el catálogo maestro. Escritura con concurrencia
// optimista: si otra petición modificó la fila entre lectura y escritura,
// retorna ErrConflict y el caller reintenta.
func (uc *UseCase) SetOverride(ctx context.Context, scope tenancy.Scope, companyID, serviceCode string, in dto.SetOverrideRequest) (*dto.OverrideResponse, error) {
	if err := uc.guard.CheckWrite(scope, companyID); err != nil {
		return nil, err
	}
	if !entity.ValidAdjustment(in.Kind, in.Value) {
		return nil, domain.ErrConstraint
	}
	svc, err := uc.svcRepo.GetByCode(ctx, serviceCode)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrServiceUnknown
	}

	now := time.Now().UTC()
	existing, err := uc.overrideRepo.Get(ctx, companyID, serviceCode)
	if err != nil {
		return nil, err
	}
	row := &entity.CompanyService{
		CompanyID:       companyID,
		ServiceCode:     serviceCode,
		AdjustmentKind:  in.Kind,
		AdjustmentValue: in.Value,
		Note:            in.Note,
		UpdatedAt:       now,
	}
	if existing == nil {
		row.CreatedAt = now
		err = uc.overrideRepo.Create(ctx, row)
	} else {
		row.CreatedAt = existing.CreatedAt
		err = uc.overrideRepo.Update(ctx, row, existing.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	out := toOverrideResponse(row)
	return &out, nil
}

// ClearOverride elimina el override (vuelta al precio maestro).
func (uc *UseCase) ClearOverride(ctx context.Context, scope tenancy.Scope, companyID, serviceCode string) error {
	if err := uc.guard.CheckWrite(scope, companyID); err != nil {
		return err
	}
	if err := uc.overrideRepo.Delete(ctx, companyID, serviceCode); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// clear sobre un override inexistente es idempotente
			return nil
		}
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// SetLaborRate registra una tarifa de mano de obra con vigencia. Dos filas con
// el mismo effective_from para la misma empresa se rechazan en la escritura.
func (uc *UseCase) SetLaborRate(ctx context.Context, scope tenancy.Scope, companyID string, in dto.SetLaborRateRequest) (*dto.LaborRateResponse, error) {
	if err := uc.guard.CheckWrite(scope, companyID); err != nil {
		return nil, err
	}
	if !in.RatePerHour.IsPositive() || in.EffectiveFrom.IsZero() {
		return nil, domain.ErrConstraint
	}
	row := &entity.CompanyLaborRate{
		CompanyID:     companyID,
		EffectiveFrom: in.EffectiveFrom.UTC(),
		RatePerHour:   in.RatePerHour,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.laborRepo.Set(ctx, row); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return &dto.LaborRateResponse{CompanyID: companyID, EffectiveFrom: row.EffectiveFrom, RatePerHour: row.RatePerHour}, nil
}

// ListLaborRates lista las tarifas de la empresa ordenadas por vigencia.
func (uc *UseCase) ListLaborRates(ctx context.Context, scope tenancy.Scope, companyID string) ([]dto.LaborRateResponse, error) {
	if err := uc.guard.CheckRead(scope, companyID); err != nil {
		return nil, err
	}
	list, err := uc.laborRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LaborRateResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.LaborRateResponse{CompanyID: r.CompanyID, EffectiveFrom: r.EffectiveFrom, RatePerHour: r.RatePerHour})
	}
	return items, nil
}

// DeleteLaborRate elimina una tarifa por su effective_from exacto.
func (uc *UseCase) DeleteLaborRate(ctx context.Context, scope tenancy.Scope, companyID string, effectiveFrom time.Time) error {
	if err := uc.guard.CheckWrite(scope, companyID); err != nil {
		return err
	}
	if err := uc.laborRepo.Delete(ctx, companyID, effectiveFrom.UTC()); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// SetTaxRate registra una tasa de impuesto con vigencia y jurisdicción.
func (uc *UseCase) SetTaxRate(ctx context.Context, scope tenancy.Scope, companyID string, in dto.SetTaxRateRequest) (*dto.TaxRateResponse, error) {
	if err := uc.guard.CheckWrite(scope, companyID); err != nil {
		return nil, err
	}
	if !entity.ValidTaxRate(in.Rate) || in.EffectiveFrom.IsZero() {
		return nil, domain.ErrConstraint
	}
	row := &entity.CompanyTaxRate{
		CompanyID:     companyID,
		Jurisdiction:  in.Jurisdiction,
		EffectiveFrom: in.EffectiveFrom.UTC(),
		Rate:          in.Rate,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.taxRepo.Set(ctx, row); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return &dto.TaxRateResponse{CompanyID: companyID, Jurisdiction: row.Jurisdiction, EffectiveFrom: row.EffectiveFrom, Rate: row.Rate}, nil
}

// ListTaxRates lista las tasas de la empresa (todas las jurisdicciones).
func (uc *UseCase) ListTaxRates(ctx context.Context, scope tenancy.Scope, companyID string) ([]dto.TaxRateResponse, error) {
	if err := uc.guard.CheckRead(scope, companyID); err != nil {
		return nil, err
	}
	list, err := uc.taxRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaxRateResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.TaxRateResponse{CompanyID: r.CompanyID, Jurisdiction: r.Jurisdiction, EffectiveFrom: r.EffectiveFrom, Rate: r.Rate})
	}
	return items, nil
}

// DeleteTaxRate elimina una tasa por jurisdicción y effective_from exacto.
func (uc *UseCase) DeleteTaxRate(ctx context.Context, scope tenancy.Scope, companyID, jurisdiction string, effectiveFrom time.Time) error {
	if err := uc.guard.CheckWrite(scope, companyID); err != nil {
		return err
	}
	if err := uc.taxRepo.Delete(ctx, companyID, jurisdiction, effectiveFrom.UTC()); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

func (uc *UseCase) invalidate(ctx context.Context, companyID string) {
	if uc.invalidator == nil {
		return
	}
	// La invalidación es best-effort: un fallo de cache no debe abortar una
	// escritura ya confirmada. El cache versiona por empresa, así que el
	// próximo Invalidate o el TTL recupera la consistencia.
	_ = uc.invalidator.Invalidate(ctx, companyID)
}

func toOverrideResponse(row *entity.CompanyService) dto.OverrideResponse {
	return dto.OverrideResponse{
		CompanyID:   row.CompanyID,
		ServiceCode: row.ServiceCode,
		Kind:        row.AdjustmentKind,
		Value:       row.AdjustmentValue,
		Note:        row.Note,
		UpdatedAt:   row.UpdatedAt,
	}
}
