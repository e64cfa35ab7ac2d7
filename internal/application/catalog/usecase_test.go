package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/servicepros/pricebook-api/internal/application/catalog"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/tenancy"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeCatRepo struct {
	rows           map[string]*entity.Category
	activeChildren map[string]bool
}

func (f *fakeCatRepo) GetByCode(_ context.Context, code string) (*entity.Category, error) {
	c, ok := f.rows[code]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCatRepo) List(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.rows {
		if activeOnly && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCatRepo) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	f.rows[c.Code] = &cp
	return nil
}

func (f *fakeCatRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	f.rows[c.Code] = &cp
	return nil
}

func (f *fakeCatRepo) HasActiveSubcategories(_ context.Context, code string) (bool, error) {
	return f.activeChildren[code], nil
}

type fakeSubRepo struct {
	rows           map[string]*entity.Subcategory
	activeServices map[string]bool
}

func (f *fakeSubRepo) GetByCode(_ context.Context, code string) (*entity.Subcategory, error) {
	s, ok := f.rows[code]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubRepo) ListByCategory(_ context.Context, categoryCode string, activeOnly bool) ([]*entity.Subcategory, error) {
	var out []*entity.Subcategory
	for _, s := range f.rows {
		if s.CategoryCode != categoryCode || (activeOnly && !s.Active) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSubRepo) Create(_ context.Context, s *entity.Subcategory) error {
	cp := *s
	f.rows[s.Code] = &cp
	return nil
}

func (f *fakeSubRepo) Update(_ context.Context, s *entity.Subcategory) error {
	cp := *s
	f.rows[s.Code] = &cp
	return nil
}

func (f *fakeSubRepo) HasActiveServices(_ context.Context, code string) (bool, error) {
	return f.activeServices[code], nil
}

type fakeServiceRepo struct {
	rows map[string]*entity.MasterService
}

func (f *fakeServiceRepo) GetByCode(_ context.Context, code string) (*entity.MasterService, error) {
	s, ok := f.rows[code]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeServiceRepo) ListBySubcategory(_ context.Context, sub string, activeOnly bool, _ string) ([]*entity.MasterService, error) {
	var out []*entity.MasterService
	for _, s := range f.rows {
		if s.SubcategoryCode != sub || (activeOnly && !s.Active) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeServiceRepo) Create(_ context.Context, s *entity.MasterService) error {
	cp := *s
	f.rows[s.Code] = &cp
	return nil
}

func (f *fakeServiceRepo) Update(_ context.Context, s *entity.MasterService) error {
	cp := *s
	f.rows[s.Code] = &cp
	return nil
}

type fakeRefRepo struct {
	referenced map[string]bool
}

func (f *fakeRefRepo) Get(context.Context, string, string) (*entity.CompanyService, error) {
	return nil, nil
}
func (f *fakeRefRepo) ListByCompany(context.Context, string) ([]*entity.CompanyService, error) {
	return nil, nil
}
func (f *fakeRefRepo) Create(context.Context, *entity.CompanyService) error { return nil }
func (f *fakeRefRepo) Update(context.Context, *entity.CompanyService, time.Time) error {
	return nil
}
func (f *fakeRefRepo) Delete(context.Context, string, string) error { return nil }
func (f *fakeRefRepo) ExistsForService(_ context.Context, code string) (bool, error) {
	return f.referenced[code], nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

type catalogFixture struct {
	uc   *catalog.UseCase
	cats *fakeCatRepo
	subs *fakeSubRepo
	svcs *fakeServiceRepo
	refs *fakeRefRepo
}

func newCatalogFixture() *catalogFixture {
	cats := &fakeCatRepo{
		rows: map[string]*entity.Category{
			"EL": {Code: "EL", Name: "Electrical", Active: true},
		},
		activeChildren: map[string]bool{},
	}
	subs := &fakeSubRepo{
		rows: map[string]*entity.Subcategory{
			"EL-01": {Code: "EL-01", CategoryCode: "EL", Name: "Outlets", Active: true},
		},
		activeServices: map[string]bool{},
	}
	svcs := &fakeServiceRepo{
		rows: map[string]*entity.MasterService{
			"EL-01-A-001": {
				Code: "EL-01-A-001", SubcategoryCode: "EL-01", Name: "Replace outlet",
				BasePrice: decimal.RequireFromString("100.0000"), Active: true,
			},
		},
	}
	refs := &fakeRefRepo{referenced: map[string]bool{}}
	return &catalogFixture{uc: catalog.NewUseCase(cats, subs, svcs, refs), cats: cats, subs: subs, svcs: svcs, refs: refs}
}

func admin() tenancy.Scope {
	return tenancy.Scope{UserID: "u1", CompanyID: "", Role: entity.RoleAdmin}
}

func boolp(b bool) *bool { return &b }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ── mutaciones requieren admin ────────────────────────────────────────────────

func TestUpsertCategory_SoloAdmin(t *testing.T) {
	f := newCatalogFixture()
	scope := tenancy.Scope{UserID: "u1", CompanyID: "c1", Role: entity.RoleCompanyAdmin}
	_, err := f.uc.UpsertCategory(context.Background(), scope, "PL", dto.UpsertCategoryRequest{Name: "Plumbing"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpsertCategory_CreaYEdita(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	out, err := f.uc.UpsertCategory(ctx, admin(), "PL", dto.UpsertCategoryRequest{Name: "Plumbing", Sort: 2})
	require.NoError(t, err)
	assert.True(t, out.Active, "activa por defecto en la creación")

	out, err = f.uc.UpsertCategory(ctx, admin(), "PL", dto.UpsertCategoryRequest{Name: "Plumbing & Gas", Sort: 3})
	require.NoError(t, err)
	assert.Equal(t, "Plumbing & Gas", out.Name)
	assert.Equal(t, 3, out.Sort)
}

// Soft-delete con subcategorías activas: rechazado.
func TestUpsertCategory_SoftDeleteConHijas(t *testing.T) {
	f := newCatalogFixture()
	f.cats.activeChildren["EL"] = true

	_, err := f.uc.UpsertCategory(context.Background(), admin(), "EL", dto.UpsertCategoryRequest{Active: boolp(false)})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	f.cats.activeChildren["EL"] = false
	out, err := f.uc.UpsertCategory(context.Background(), admin(), "EL", dto.UpsertCategoryRequest{Active: boolp(false)})
	require.NoError(t, err)
	assert.False(t, out.Active)
}

// Formato <CAT>-NN[-X] y prefijo del padre.
func TestUpsertSubcategory_FormatoCodigo(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	casos := []string{"EL01", "EL-1", "PL-01", "EL-01-"}
	for _, code := range casos {
		_, err := f.uc.UpsertSubcategory(ctx, admin(), code, dto.UpsertSubcategoryRequest{
			CategoryCode: "EL", Name: "X",
		})
		assert.ErrorIs(t, err, domain.ErrConstraint, "código %q debe rechazarse", code)
	}

	out, err := f.uc.UpsertSubcategory(ctx, admin(), "EL-02", dto.UpsertSubcategoryRequest{
		CategoryCode: "EL", Name: "Panels",
	})
	require.NoError(t, err)
	assert.Equal(t, "EL-02", out.Code)

	// sufijo opcional
	_, err = f.uc.UpsertSubcategory(ctx, admin(), "EL-03-A", dto.UpsertSubcategoryRequest{
		CategoryCode: "EL", Name: "Special",
	})
	assert.NoError(t, err)
}

// El padre debe existir y estar activo al crear.
func TestUpsertSubcategory_PadreInactivo(t *testing.T) {
	f := newCatalogFixture()
	f.cats.rows["EL"].Active = false
	_, err := f.uc.UpsertSubcategory(context.Background(), admin(), "EL-05", dto.UpsertSubcategoryRequest{
		CategoryCode: "EL", Name: "X",
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestUpsertSubcategory_SoftDeleteConServicios(t *testing.T) {
	f := newCatalogFixture()
	f.subs.activeServices["EL-01"] = true
	_, err := f.uc.UpsertSubcategory(context.Background(), admin(), "EL-01", dto.UpsertSubcategoryRequest{
		Active: boolp(false),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

// base_price congelado una vez referenciado por algún override.
func TestUpsertService_BasePriceCongelado(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	f.refs.referenced["EL-01-A-001"] = true

	_, err := f.uc.UpsertService(ctx, admin(), "EL-01-A-001", dto.UpsertServiceRequest{
		BasePrice: decp("120.0000"),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	// los demás campos siguen siendo editables
	out, err := f.uc.UpsertService(ctx, admin(), "EL-01-A-001", dto.UpsertServiceRequest{
		Name: "Replace outlet (v2)", BaseLaborHours: decp("1.75"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Replace outlet (v2)", out.Name)

	// y con el mismo precio no cuenta como cambio
	_, err = f.uc.UpsertService(ctx, admin(), "EL-01-A-001", dto.UpsertServiceRequest{
		BasePrice: decp("100.0000"),
	})
	assert.NoError(t, err)
}

func TestUpsertService_ValidacionMontos(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	// negativo
	_, err := f.uc.UpsertService(ctx, admin(), "EL-01-B-001", dto.UpsertServiceRequest{
		SubcategoryCode: "EL-01", Name: "X", BasePrice: decp("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	// más de 4 decimales
	_, err = f.uc.UpsertService(ctx, admin(), "EL-01-B-001", dto.UpsertServiceRequest{
		SubcategoryCode: "EL-01", Name: "X", BasePrice: decp("10.00001"),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	// horas con más de 2 decimales
	_, err = f.uc.UpsertService(ctx, admin(), "EL-01-B-001", dto.UpsertServiceRequest{
		SubcategoryCode: "EL-01", Name: "X", BasePrice: decp("10.0000"), BaseLaborHours: decp("1.555"),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestUpsertService_SubcategoriaInexistente(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.UpsertService(context.Background(), admin(), "ZZ-01-A-001", dto.UpsertServiceRequest{
		SubcategoryCode: "ZZ-01", Name: "X", BasePrice: decp("10.0000"),
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestGetService_Desconocido(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.GetService(context.Background(), "NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrServiceUnknown)
}
