package entity

import "time"

// Company representa una organización/tenant del sistema. Currency queda fija
// al crearse; Timezone es un identificador IANA (ej. "America/Denver").
type Company struct {
	ID        string
	Name      string
	Timezone  string
	Currency  string // fija en la creación; no hay multi-moneda
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
