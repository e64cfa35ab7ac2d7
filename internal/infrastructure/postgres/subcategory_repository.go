package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implementación del puerto SubcategoryRepository sobre PostgreSQL.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

// GetByCode obtiene una subcategoría por código. Retorna nil, nil si no existe.
func (r *SubcategoryRepo) GetByCode(ctx context.Context, code string) (*entity.Subcategory, error) {
	query := `
		SELECT code, category_code, name, sort, active, created_at, updated_at
		FROM subcategories WHERE code = $1`
	var s entity.Subcategory
	err := r.q.QueryRow(ctx, query, code).Scan(&s.Code, &s.CategoryCode, &s.Name, &s.Sort, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, "get subcategory")
	}
	return &s, nil
}

// ListByCategory lista subcategorías de una categoría, ordenadas por sort y código.
func (r *SubcategoryRepo) ListByCategory(ctx context.Context, categoryCode string, activeOnly bool) ([]*entity.Subcategory, error) {
	query := `
		SELECT code, category_code, name, sort, active, created_at, updated_at
		FROM subcategories
		WHERE category_code = $1 AND ($2 = false OR active = true)
		ORDER BY sort, code`
	rows, err := r.q.Query(ctx, query, categoryCode, activeOnly)
	if err != nil {
		return nil, mapError(err, "list subcategories")
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.Code, &s.CategoryCode, &s.Name, &s.Sort, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, mapError(err, "scan subcategory")
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Create persiste una nueva subcategoría.
func (r *SubcategoryRepo) Create(ctx context.Context, s *entity.Subcategory) error {
	query := `
		INSERT INTO subcategories (code, category_code, name, sort, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.Code, s.CategoryCode, s.Name, s.Sort, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return mapError(err, "insert subcategory")
	}
	return nil
}

// Update actualiza una subcategoría existente. Código y padre no cambian.
func (r *SubcategoryRepo) Update(ctx context.Context, s *entity.Subcategory) error {
	query := `
		UPDATE subcategories SET name = $2, sort = $3, active = $4, updated_at = $5
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query, s.Code, s.Name, s.Sort, s.Active, s.UpdatedAt)
	if err != nil {
		return mapError(err, "update subcategory")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasActiveServices indica si quedan servicios activos bajo la subcategoría.
func (r *SubcategoryRepo) HasActiveServices(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM master_services WHERE subcategory_code = $1 AND active = true)`,
		code,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "check services")
	}
	return exists, nil
}
