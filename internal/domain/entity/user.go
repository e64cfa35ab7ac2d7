package entity

import "time"

// Roles de usuario. El rol viaja en el claim JWT para que el middleware RBAC
// decida sin consultar la DB.
const (
	RoleAdmin        = "admin"         // opera el catálogo maestro
	RoleCompanyAdmin = "company_admin" // edita el overlay de su empresa
	RoleCompanyUser  = "company_user"  // navega y cotiza
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCompanyAdmin || role == RoleCompanyUser
}

// User usuario de una empresa (multi-tenant).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
