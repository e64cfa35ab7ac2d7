package tenancy

import (
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/pkg/logger"
)

// Scope es el sobre de tenencia derivado de un principal autenticado.
// Acota toda lectura/escritura de datos de overlay a una sola empresa.
type Scope struct {
	UserID    string
	CompanyID string
	Role      string
}

// IsAdmin indica si el principal opera el catálogo maestro.
func (s Scope) IsAdmin() bool { return s.Role == entity.RoleAdmin }

// CanEditOverlay indica si el rol permite modificar el overlay de SU empresa.
func (s Scope) CanEditOverlay() bool {
	return s.Role == entity.RoleAdmin || s.Role == entity.RoleCompanyAdmin
}

// Guard valida accesos de datos contra el scope del principal.
// La invariante más importante del sistema: ningún principal puede tocar filas
// de overlay de otra empresa. AdminBypass solo relaja LECTURAS para soporte.
type Guard struct {
	adminBypass bool
	log         *logger.Logger
}

// NewGuard construye el guard. adminBypass viene de tenancy.admin_bypass.
func NewGuard(adminBypass bool, log *logger.Logger) *Guard {
	return &Guard{adminBypass: adminBypass, log: log}
}

// CheckRead autoriza una lectura de datos de overlay de targetCompany.
// Falla con ErrScopeViolation (auditado) si el scope pertenece a otra empresa,
// salvo rol admin con bypass habilitado.
func (g *Guard) CheckRead(s Scope, targetCompany string) error {
	if s.CompanyID == targetCompany {
		return nil
	}
	if g.adminBypass && s.IsAdmin() {
		return nil
	}
	g.audit(s, targetCompany, "read")
	return domain.ErrScopeViolation
}

// CheckWrite autoriza una escritura de datos de overlay de targetCompany.
// Las escrituras cross-tenant se rechazan SIEMPRE, incluso para admin.
func (g *Guard) CheckWrite(s Scope, targetCompany string) error {
	if s.CompanyID != targetCompany {
		g.audit(s, targetCompany, "write")
		return domain.ErrScopeViolation
	}
	if !s.CanEditOverlay() {
		return domain.ErrForbidden
	}
	return nil
}

func (g *Guard) audit(s Scope, targetCompany, op string) {
	if g.log == nil {
		return
	}
	g.log.Audit("scope_violation").
		Str("user_id", s.UserID).
		Str("company_id", s.CompanyID).
		Str("role", s.Role).
		Str("target_company_id", targetCompany).
		Str("op", op).
		Msg("intento de acceso cross-tenant rechazado")
}
