package entity

import "time"

// Category nivel superior del catálogo maestro (compartido entre todos los tenants).
// El código es inmutable; nunca se elimina físicamente mientras tenga subcategorías.
type Category struct {
	Code      string // corto, único, inmutable (ej. "EL")
	Name      string
	Sort      int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
