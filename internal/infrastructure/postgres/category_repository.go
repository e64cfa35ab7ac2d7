package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByCode obtiene una categoría por código. Retorna nil, nil si no existe.
func (r *CategoryRepo) GetByCode(ctx context.Context, code string) (*entity.Category, error) {
	query := `
		SELECT code, name, sort, active, created_at, updated_at
		FROM categories WHERE code = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, code).Scan(&c.Code, &c.Name, &c.Sort, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, "get category")
	}
	return &c, nil
}

// List lista categorías ordenadas por sort y luego código.
func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := `
		SELECT code, name, sort, active, created_at, updated_at
		FROM categories WHERE ($1 = false OR active = true)
		ORDER BY sort, code`
	rows, err := r.q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, mapError(err, "list categories")
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.Code, &c.Name, &c.Sort, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, mapError(err, "scan category")
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (code, name, sort, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.Code, c.Name, c.Sort, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapError(err, "insert category")
	}
	return nil
}

// Update actualiza una categoría existente. El código nunca cambia.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, sort = $3, active = $4, updated_at = $5
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query, c.Code, c.Name, c.Sort, c.Active, c.UpdatedAt)
	if err != nil {
		return mapError(err, "update category")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasActiveSubcategories indica si quedan subcategorías activas bajo la categoría.
func (r *CategoryRepo) HasActiveSubcategories(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subcategories WHERE category_code = $1 AND active = true)`,
		code,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "check subcategories")
	}
	return exists, nil
}
