package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultJurisdiction denota la jurisdicción por defecto de una empresa.
const DefaultJurisdiction = ""

// CompanyLaborRate tarifa de mano de obra por hora, con vigencia por fechas.
// La fila con mayor EffectiveFrom <= T aplica en el instante T (intervalos
// semiabiertos [effective_from, siguiente.effective_from)). No puede haber dos
// filas con el mismo EffectiveFrom para la misma empresa.
type CompanyLaborRate struct {
	CompanyID     string
	EffectiveFrom time.Time       // instante UTC
	RatePerHour   decimal.Decimal // > 0
	CreatedAt     time.Time
}

// CompanyTaxRate tasa de impuesto con vigencia por fechas, particionada por
// jurisdicción. Jurisdiction == DefaultJurisdiction es el fallback de la empresa.
type CompanyTaxRate struct {
	CompanyID     string
	Jurisdiction  string
	EffectiveFrom time.Time
	Rate          decimal.Decimal // 0 <= r <= 1
	CreatedAt     time.Time
}

// ValidTaxRate valida el rango [0, 1].
func ValidTaxRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}
