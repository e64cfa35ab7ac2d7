package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste que una empresa aplica sobre el precio base del catálogo maestro.
const (
	AdjustPercent  = "percent"  // base * (1 + valor/100), resultado acotado en 0
	AdjustAbsolute = "absolute" // reemplaza el precio base (valor >= 0)
	AdjustHidden   = "hidden"   // oculta el servicio para el tenant; el valor se ignora
)

// Límites del ajuste porcentual.
var (
	PercentMin = decimal.NewFromInt(-100)
	PercentMax = decimal.NewFromInt(1000)
)

// CompanyService override de una empresa sobre un servicio maestro.
// Exactamente una fila por par (company_id, service_code); borrarla significa
// volver al precio maestro.
type CompanyService struct {
	CompanyID       string
	ServiceCode     string
	AdjustmentKind  string          // ver constantes Adjust*
	AdjustmentValue decimal.Decimal // ignorado si AdjustmentKind == hidden
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time // token de concurrencia optimista
}

// ValidAdjustment valida tipo y rango del ajuste.
func ValidAdjustment(kind string, value decimal.Decimal) bool {
	switch kind {
	case AdjustPercent:
		return value.GreaterThanOrEqual(PercentMin) && value.LessThanOrEqual(PercentMax)
	case AdjustAbsolute:
		return !value.IsNegative()
	case AdjustHidden:
		return true
	default:
		return false
	}
}
