package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

var _ repository.CompanyServiceRepository = (*CompanyServiceRepo)(nil)

// CompanyServiceRepo implementación del puerto CompanyServiceRepository sobre PostgreSQL.
type CompanyServiceRepo struct {
	q Querier
}

// NewCompanyServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyServiceRepository(q Querier) *CompanyServiceRepo {
	return &CompanyServiceRepo{q: q}
}

// Get obtiene el override de un par (empresa, servicio). Retorna nil, nil si no existe.
func (r *CompanyServiceRepo) Get(ctx context.Context, companyID, serviceCode string) (*entity.CompanyService, error) {
	query := `
		SELECT company_id, service_code, adjustment_kind, adjustment_value, note, created_at, updated_at
		FROM company_services WHERE company_id = $1 AND service_code = $2`
	var cs entity.CompanyService
	err := r.q.QueryRow(ctx, query, companyID, serviceCode).Scan(
		&cs.CompanyID, &cs.ServiceCode, &cs.AdjustmentKind, &cs.AdjustmentValue,
		&cs.Note, &cs.CreatedAt, &cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err, "get company service")
	}
	return &cs, nil
}

// ListByCompany lista todos los overrides de la empresa.
func (r *CompanyServiceRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyService, error) {
	query := `
		SELECT company_id, service_code, adjustment_kind, adjustment_value, note, created_at, updated_at
		FROM company_services WHERE company_id = $1 ORDER BY service_code`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, mapError(err, "list company services")
	}
	defer rows.Close()
	var list []*entity.CompanyService
	for rows.Next() {
		var cs entity.CompanyService
		if err := rows.Scan(&cs.CompanyID, &cs.ServiceCode, &cs.AdjustmentKind, &cs.AdjustmentValue,
			&cs.Note, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
			return nil, mapError(err, "scan company service")
		}
		list = append(list, &cs)
	}
	return list, rows.Err()
}

// Create inserta un override nuevo. Par duplicado -> ErrConflict (otra petición
// ganó la carrera de creación; el caller reintenta como update).
func (r *CompanyServiceRepo) Create(ctx context.Context, cs *entity.CompanyService) error {
	query := `
		INSERT INTO company_services (company_id, service_code, adjustment_kind, adjustment_value, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		cs.CompanyID, cs.ServiceCode, cs.AdjustmentKind, cs.AdjustmentValue, cs.Note, cs.CreatedAt, cs.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return mapError(err, "insert company service")
	}
	return nil
}

// Update aplica concurrencia optimista: la fila debe conservar el updated_at
// leído (prevUpdatedAt) o la escritura falla con ErrConflict.
func (r *CompanyServiceRepo) Update(ctx context.Context, cs *entity.CompanyService, prevUpdatedAt time.Time) error {
	query := `
		UPDATE company_services
		SET adjustment_kind = $3, adjustment_value = $4, note = $5, updated_at = $6
		WHERE company_id = $1 AND service_code = $2 AND updated_at = $7`
	cmd, err := r.q.Exec(ctx, query,
		cs.CompanyID, cs.ServiceCode, cs.AdjustmentKind, cs.AdjustmentValue, cs.Note, cs.UpdatedAt, prevUpdatedAt,
	)
	if err != nil {
		return mapError(err, "update company service")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete elimina el override (vuelta al maestro). ErrNotFound si no existía.
func (r *CompanyServiceRepo) Delete(ctx context.Context, companyID, serviceCode string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM company_services WHERE company_id = $1 AND service_code = $2`,
		companyID, serviceCode,
	)
	if err != nil {
		return mapError(err, "delete company service")
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsForService indica si alguna empresa referencia el servicio (congela el
// base_price maestro).
func (r *CompanyServiceRepo) ExistsForService(ctx context.Context, serviceCode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM company_services WHERE service_code = $1)`,
		serviceCode,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "check service references")
	}
	return exists, nil
}
