package company

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/repository"
)

// UseCase registro mínimo de empresas (tenants).
type UseCase struct {
	repo repository.CompanyRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CompanyRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create registra una empresa. La moneda queda fija en la creación; el timezone
// debe ser un identificador IANA válido.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || in.Currency == "" {
		return nil, domain.ErrInvalidInput
	}
	tz := in.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Timezone:  tz,
		Currency:  in.Currency,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCompanyResponse(c), nil
}

// GetByID obtiene una empresa por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(c), nil
}

// List lista empresas con paginación (solo admin a nivel de ruta).
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Timezone:  c.Timezone,
		Currency:  c.Currency,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
