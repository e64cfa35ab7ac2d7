package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
	"github.com/servicepros/pricebook-api/internal/domain/tenancy"
)

// UseCase navegación y administración del catálogo maestro.
// Las lecturas están abiertas a cualquier principal autenticado (el catálogo es
// agnóstico al tenant); las mutaciones exigen rol admin.
type UseCase struct {
	catRepo      repository.CategoryRepository
	subRepo      repository.SubcategoryRepository
	svcRepo      repository.MasterServiceRepository
	overrideRepo repository.CompanyServiceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	catRepo repository.CategoryRepository,
	subRepo repository.SubcategoryRepository,
	svcRepo repository.MasterServiceRepository,
	overrideRepo repository.CompanyServiceRepository,
) *UseCase {
	return &UseCase{catRepo: catRepo, subRepo: subRepo, svcRepo: svcRepo, overrideRepo: overrideRepo}
}

// ListCategories lista categorías ordenadas por sort y luego código.
func (uc *UseCase) ListCategories(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := uc.catRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	return items, nil
}

// ListSubcategories lista subcategorías de una categoría.
func (uc *UseCase) ListSubcategories(ctx context.Context, categoryCode string, activeOnly bool) ([]dto.SubcategoryResponse, error) {
	list, err := uc.subRepo.ListByCategory(ctx, categoryCode, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSubcategoryResponse(s))
	}
	return items, nil
}

// ListServices lista servicios de una subcategoría, con búsqueda substring
// case-insensitive sobre nombre y código.
func (uc *UseCase) ListServices(ctx context.Context, subcategoryCode string, activeOnly bool, search string) (*dto.ServiceListResponse, error) {
	list, err := uc.svcRepo.ListBySubcategory(ctx, subcategoryCode, activeOnly, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toServiceResponse(s))
	}
	return &dto.ServiceListResponse{Items: items}, nil
}

// GetService obtiene la fila maestra de un servicio.
func (uc *UseCase) GetService(ctx context.Context, code string) (*dto.ServiceResponse, error) {
	svc, err := uc.svcRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrServiceUnknown
	}
	out := toServiceResponse(svc)
	return &out, nil
}

// UpsertCategory crea o edita una categoría. El código es inmutable: en edición
// identifica la fila. Soft-delete (active=false) exige que no queden
// subcategorías activas.
func (uc *UseCase) UpsertCategory(ctx context.Context, scope tenancy.Scope, code string, in dto.UpsertCategoryRequest) (*dto.CategoryResponse, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	existing, err := uc.catRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		c := &entity.Category{
			Code:      code,
			Name:      in.Name,
			Sort:      in.Sort,
			Active:    in.Active == nil || *in.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.catRepo.Create(ctx, c); err != nil {
			return nil, err
		}
		out := toCategoryResponse(c)
		return &out, nil
	}
	if in.Name != "" {
		existing.Name = in.Name
	}
	existing.Sort = in.Sort
	if in.Active != nil {
		if !*in.Active && existing.Active {
			hasChildren, err := uc.catRepo.HasActiveSubcategories(ctx, code)
			if err != nil {
				return nil, err
			}
			if hasChildren {
				return nil, domain.ErrConstraint
			}
		}
		existing.Active = *in.Active
	}
	existing.UpdatedAt = now
	if err := uc.catRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	out := toCategoryResponse(existing)
	return &out, nil
}

// UpsertSubcategory crea o edita una subcategoría. En la creación el padre debe
// existir y estar activo, y el código debe cumplir el formato <CAT>-NN[-X].
func (uc *UseCase) UpsertSubcategory(ctx context.Context, scope tenancy.Scope, code string, in dto.UpsertSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	existing, err := uc.subRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if in.Name == "" || in.CategoryCode == "" {
			return nil, domain.ErrInvalidInput
		}
		if !entity.ValidSubcategoryCode(code, in.CategoryCode) {
			return nil, domain.ErrConstraint
		}
		parent, err := uc.catRepo.GetByCode(ctx, in.CategoryCode)
		if err != nil {
			return nil, err
		}
		if parent == nil || !parent.Active {
			return nil, domain.ErrConstraint
		}
		s := &entity.Subcategory{
			Code:         code,
			CategoryCode: in.CategoryCode,
			Name:         in.Name,
			Sort:         in.Sort,
			Active:       in.Active == nil || *in.Active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.subRepo.Create(ctx, s); err != nil {
			return nil, err
		}
		out := toSubcategoryResponse(s)
		return &out, nil
	}
	if in.Name != "" {
		existing.Name = in.Name
	}
	existing.Sort = in.Sort
	if in.Active != nil {
		if !*in.Active && existing.Active {
			hasServices, err := uc.subRepo.HasActiveServices(ctx, code)
			if err != nil {
				return nil, err
			}
			if hasServices {
				return nil, domain.ErrConstraint
			}
		}
		existing.Active = *in.Active
	}
	existing.UpdatedAt = now
	if err := uc.subRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	out := toSubcategoryResponse(existing)
	return &out, nil
}

// UpsertService crea o edita un servicio maestro. El base_price queda congelado
// una vez que alguna empresa lo referencia con un override.
func (uc *UseCase) UpsertService(ctx context.Context, scope tenancy.Scope, code string, in dto.UpsertServiceRequest) (*dto.ServiceResponse, error) {
	if !scope.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	existing, err := uc.svcRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if in.Name == "" || in.SubcategoryCode == "" || in.BasePrice == nil {
			return nil, domain.ErrInvalidInput
		}
		sub, err := uc.subRepo.GetByCode(ctx, in.SubcategoryCode)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, domain.ErrConstraint
		}
		laborHours := decimal.Zero
		if in.BaseLaborHours != nil {
			laborHours = *in.BaseLaborHours
		}
		if err := validMoney(*in.BasePrice, 4); err != nil {
			return nil, err
		}
		if err := validMoney(laborHours, 2); err != nil {
			return nil, err
		}
		unit := in.Unit
		if unit == "" {
			unit = "each"
		}
		s := &entity.MasterService{
			Code:            code,
			SubcategoryCode: in.SubcategoryCode,
			Name:            in.Name,
			Description:     in.Description,
			BasePrice:       *in.BasePrice,
			BaseLaborHours:  laborHours,
			Unit:            unit,
			Active:          in.Active == nil || *in.Active,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.svcRepo.Create(ctx, s); err != nil {
			return nil, err
		}
		out := toServiceResponse(s)
		return &out, nil
	}
	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Description != "" {
		existing.Description = in.Description
	}
	if in.Unit != "" {
		existing.Unit = in.Unit
	}
	if in.BasePrice != nil && !in.BasePrice.Equal(existing.BasePrice) {
		if err := validMoney(*in.BasePrice, 4); err != nil {
			return nil, err
		}
		referenced, err := uc.overrideRepo.ExistsForService(ctx, code)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, domain.ErrConstraint
		}
		existing.BasePrice = *in.BasePrice
	}
	if in.BaseLaborHours != nil {
		if err := validMoney(*in.BaseLaborHours, 2); err != nil {
			return nil, err
		}
		existing.BaseLaborHours = *in.BaseLaborHours
	}
	if in.Active != nil {
		existing.Active = *in.Active
	}
	existing.UpdatedAt = now
	if err := uc.svcRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	out := toServiceResponse(existing)
	return &out, nil
}

// validMoney valida no-negativo y máximo de decimales.
func validMoney(v decimal.Decimal, places int32) error {
	if v.IsNegative() {
		return domain.ErrConstraint
	}
	if v.Exponent() < -places {
		return domain.ErrConstraint
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{Code: c.Code, Name: c.Name, Sort: c.Sort, Active: c.Active, UpdatedAt: c.UpdatedAt}
}

func toSubcategoryResponse(s *entity.Subcategory) dto.SubcategoryResponse {
	return dto.SubcategoryResponse{
		Code: s.Code, CategoryCode: s.CategoryCode, Name: s.Name,
		Sort: s.Sort, Active: s.Active, UpdatedAt: s.UpdatedAt,
	}
}

func toServiceResponse(s *entity.MasterService) dto.ServiceResponse {
	return dto.ServiceResponse{
		Code:            s.Code,
		SubcategoryCode: s.SubcategoryCode,
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		BaseLaborHours:  s.BaseLaborHours,
		Unit:            s.Unit,
		Active:          s.Active,
		UpdatedAt:       s.UpdatedAt,
	}
}
