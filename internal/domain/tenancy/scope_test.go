package tenancy_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/tenancy"
	"github.com/servicepros/pricebook-api/pkg/logger"
)

func scopeFor(companyID, role string) tenancy.Scope {
	return tenancy.Scope{UserID: "u1", CompanyID: companyID, Role: role}
}

func TestCheckRead_MismaEmpresa(t *testing.T) {
	g := tenancy.NewGuard(false, nil)
	err := g.CheckRead(scopeFor("c1", entity.RoleCompanyUser), "c1")
	assert.NoError(t, err)
}

func TestCheckRead_CrossTenantRechazado(t *testing.T) {
	g := tenancy.NewGuard(false, nil)
	err := g.CheckRead(scopeFor("c2", entity.RoleCompanyAdmin), "c1")
	assert.ErrorIs(t, err, domain.ErrScopeViolation)
}

// Con bypass habilitado, solo el rol admin puede leer cross-tenant.
func TestCheckRead_AdminBypass(t *testing.T) {
	g := tenancy.NewGuard(true, nil)

	assert.NoError(t, g.CheckRead(scopeFor("c2", entity.RoleAdmin), "c1"))
	assert.ErrorIs(t, g.CheckRead(scopeFor("c2", entity.RoleCompanyAdmin), "c1"), domain.ErrScopeViolation)
	assert.ErrorIs(t, g.CheckRead(scopeFor("c2", entity.RoleCompanyUser), "c1"), domain.ErrScopeViolation)
}

// Bypass deshabilitado: ni siquiera admin lee cross-tenant.
func TestCheckRead_AdminSinBypass(t *testing.T) {
	g := tenancy.NewGuard(false, nil)
	assert.ErrorIs(t, g.CheckRead(scopeFor("c2", entity.RoleAdmin), "c1"), domain.ErrScopeViolation)
}

// Las escrituras cross-tenant se rechazan SIEMPRE, bypass incluido.
func TestCheckWrite_CrossTenantSiempreRechazado(t *testing.T) {
	g := tenancy.NewGuard(true, nil)

	assert.ErrorIs(t, g.CheckWrite(scopeFor("c2", entity.RoleAdmin), "c1"), domain.ErrScopeViolation)
	assert.ErrorIs(t, g.CheckWrite(scopeFor("c2", entity.RoleCompanyAdmin), "c1"), domain.ErrScopeViolation)
}

func TestCheckWrite_RolInsuficiente(t *testing.T) {
	g := tenancy.NewGuard(false, nil)
	err := g.CheckWrite(scopeFor("c1", entity.RoleCompanyUser), "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCheckWrite_MismaEmpresa(t *testing.T) {
	g := tenancy.NewGuard(false, nil)
	assert.NoError(t, g.CheckWrite(scopeFor("c1", entity.RoleCompanyAdmin), "c1"))
	assert.NoError(t, g.CheckWrite(scopeFor("c1", entity.RoleAdmin), "c1"))
}

// Toda violación de scope emite un evento de auditoría con el principal, la
// empresa objetivo y la operación.
func TestGuard_ViolacionEmiteAuditoria(t *testing.T) {
	var buf bytes.Buffer
	g := tenancy.NewGuard(false, logger.NewWithWriter(&buf, "warn"))

	assert.ErrorIs(t, g.CheckWrite(scopeFor("c2", entity.RoleCompanyAdmin), "c1"), domain.ErrScopeViolation)

	out := buf.String()
	assert.Contains(t, out, `"audit":"scope_violation"`)
	assert.Contains(t, out, `"company_id":"c2"`)
	assert.Contains(t, out, `"target_company_id":"c1"`)
	assert.Contains(t, out, `"op":"write"`)

	buf.Reset()
	assert.ErrorIs(t, g.CheckRead(scopeFor("c2", entity.RoleCompanyUser), "c1"), domain.ErrScopeViolation)
	assert.Contains(t, buf.String(), `"op":"read"`)
}

// Los accesos legítimos no generan ruido de auditoría.
func TestGuard_AccesoPropioNoAudita(t *testing.T) {
	var buf bytes.Buffer
	g := tenancy.NewGuard(true, logger.NewWithWriter(&buf, "warn"))

	assert.NoError(t, g.CheckRead(scopeFor("c1", entity.RoleCompanyUser), "c1"))
	assert.NoError(t, g.CheckRead(scopeFor("c2", entity.RoleAdmin), "c1"), "lectura admin con bypass")
	assert.Empty(t, buf.String())
}
