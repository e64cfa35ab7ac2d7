package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasterService entrada del catálogo maestro compartida entre todos los tenants.
// BasePrice es decimal fijo a 4 decimales; BaseLaborHours a 2 decimales.
// BasePrice queda congelado una vez que alguna empresa lo referencia con un
// override (CompanyService); antes de eso es editable libremente.
type MasterService struct {
	Code            string // único (ej. "EL-01-A-001")
	SubcategoryCode string
	Name            string
	Description     string
	BasePrice       decimal.Decimal // >= 0, 4dp
	BaseLaborHours  decimal.Decimal // >= 0, 2dp
	Unit            string          // unidad de venta (ej. "each", "hour", "ft")
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
