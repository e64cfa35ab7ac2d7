package repository

import (
	"context"

	"github.com/servicepros/pricebook-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Category, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	// HasActiveSubcategories se usa para impedir el soft-delete con hijos activos.
	HasActiveSubcategories(ctx context.Context, code string) (bool, error)
}

// SubcategoryRepository puerto de persistencia para Subcategory.
type SubcategoryRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Subcategory, error)
	ListByCategory(ctx context.Context, categoryCode string, activeOnly bool) ([]*entity.Subcategory, error)
	Create(ctx context.Context, s *entity.Subcategory) error
	Update(ctx context.Context, s *entity.Subcategory) error
	HasActiveServices(ctx context.Context, code string) (bool, error)
}

// MasterServiceRepository puerto de persistencia para MasterService.
type MasterServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.MasterService, error)
	// ListBySubcategory filtra por subcategoría; search hace substring
	// case-insensitive sobre nombre y código (vacío = sin filtro).
	ListBySubcategory(ctx context.Context, subcategoryCode string, activeOnly bool, search string) ([]*entity.MasterService, error)
	Create(ctx context.Context, s *entity.MasterService) error
	Update(ctx context.Context, s *entity.MasterService) error
}
