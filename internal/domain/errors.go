package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cubren la taxonomía completa
// que la fachada expone al cliente HTTP; los adaptadores de persistencia mapean
// los errores del driver a estos sentinelas.
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrConstraint    = errors.New("violación de integridad o de rango")
	ErrConflict      = errors.New("conflicto de concurrencia, reintente")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")

	// Errores específicos del resolver de precios. Distintos de ErrNotFound a
	// propósito: el cliente debe poder distinguir "no existe" de "existe pero
	// no cotizable para este tenant".
	ErrServiceUnknown  = errors.New("servicio no existe en el catálogo maestro")
	ErrServiceInactive = errors.New("servicio inactivo en el catálogo maestro")
	ErrServiceHidden   = errors.New("servicio oculto para esta empresa")

	// ErrScopeViolation: intento de acceso cross-tenant. Fatal para la petición,
	// se audita y nunca se reintenta.
	ErrScopeViolation = errors.New("violación de scope multi-tenant")

	// Errores reintentables de infraestructura.
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")
	ErrTimeout          = errors.New("tiempo de espera agotado")
)

// Retriable indica si el error admite reintento por parte del caller.
func Retriable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrConflict)
}
