package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

var _ repository.MasterServiceRepository = (*MasterServiceRepo)(nil)

// MasterServiceRepo implementación del puerto MasterServiceRepository sobre PostgreSQL.
type MasterServiceRepo struct {
	q Querier
}

// NewMasterServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMasterServiceRepository(q Querier) *MasterServiceRepo {
	return &MasterServiceRepo{q: q}
}

// GetByCode obtiene un servicio maestro por código. Retorna nil, nil si no existe.
func (r *MasterServiceRepo) GetByCode(ctx context.Context, code string) (*entity.MasterService, error) {
	query := `
		SELECT code, subcategory_code, name, description, base_price, base_labor_hours, unit, active, created_at, updated_at
		FROM master_services WHERE code = $1`
	var s entity.MasterService
	err := r.q.QueryRow(ctx, query, code).Scan(
		&s.Code, &s.SubcategoryCode, &s.Name, &s.Description, &s.BasePrice,
		&s.BaseLaborHours, &s.Unit, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, "get master service")
	}
	return &s, nil
}

// ListBySubcategory lista servicios, con búsqueda substring case-insensitive
// sobre nombre y código (search vacío = sin filtro). El término se escapa para
// que %, _ y \ busquen su literal en vez de actuar como comodines.
func (r *MasterServiceRepo) ListBySubcategory(ctx context.Context, subcategoryCode string, activeOnly bool, search string) ([]*entity.MasterService, error) {
	query := `
		SELECT code, subcategory_code, name, description, base_price, base_labor_hours, unit, active, created_at, updated_at
		FROM master_services
		WHERE subcategory_code = $1
		  AND ($2 = false OR active = true)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR code ILIKE '%' || $3 || '%')
		ORDER BY code`
	rows, err := r.q.Query(ctx, query, subcategoryCode, activeOnly, escapeLike(search))
	if err != nil {
		return nil, mapError(err, "list master services")
	}
	defer rows.Close()
	var list []*entity.MasterService
	for rows.Next() {
		var s entity.MasterService
		if err := rows.Scan(&s.Code, &s.SubcategoryCode, &s.Name, &s.Description, &s.BasePrice,
			&s.BaseLaborHours, &s.Unit, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, mapError(err, "scan master service")
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Create persiste un nuevo servicio maestro.
func (r *MasterServiceRepo) Create(ctx context.Context, s *entity.MasterService) error {
	query := `
		INSERT INTO master_services (code, subcategory_code, name, description, base_price, base_labor_hours, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.Code, s.SubcategoryCode, s.Name, s.Description, s.BasePrice,
		s.BaseLaborHours, s.Unit, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "insert master service")
	}
	return nil
}

// Update actualiza un servicio maestro. La inmutabilidad del base_price tras
// ser referenciado la valida el caso de uso antes de llegar aquí.
func (r *MasterServiceRepo) Update(ctx context.Context, s *entity.MasterService) error {
	query := `
		UPDATE master_services
		SET name = $2, description = $3, base_price = $4, base_labor_hours = $5, unit = $6, active = $7, updated_at = $8
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.Code, s.Name, s.Description, s.BasePrice, s.BaseLaborHours, s.Unit, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "update master service")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
