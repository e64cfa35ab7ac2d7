package pricing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
)

// RoundingMode modo de redondeo para los campos finales (2 decimales) de la
// cotización. Los productos intermedios se mantienen a 4 decimales con
// redondeo bancario independientemente del modo.
type RoundingMode int

const (
	RoundHalfEven RoundingMode = iota // redondeo bancario (default)
	RoundHalfUp
)

func (m RoundingMode) round2(d decimal.Decimal) decimal.Decimal {
	if m == RoundHalfUp {
		return d.Round(2)
	}
	return d.RoundBank(2)
}

// Snapshot lecturas consistentes necesarias para resolver una cotización.
// Todas deben provenir del mismo snapshot transaccional; el resolver no lee
// ni escribe nada por sí mismo.
type Snapshot struct {
	Service   *entity.MasterService  // nil = no existe en el catálogo maestro
	Override  *entity.CompanyService // nil = sin override, aplica precio maestro
	LaborRate decimal.Decimal        // tarifa por hora vigente en AsOf; 0 = sin cargo de mano de obra
	TaxRate   decimal.Decimal        // tasa vigente tras la cadena de fallback jurisdicción -> default -> configurado
}

// Request parámetros de la cotización.
type Request struct {
	Quantity     decimal.Decimal // >= 0; 0 es válido (útil para mostrar el catálogo)
	AsOf         time.Time
	Jurisdiction string
}

// Quote desglose completo del precio resuelto. Solo TaxAmount y Total van
// redondeados a 2 decimales; el resto conserva 4 decimales.
type Quote struct {
	ServiceCode   string          `json:"service_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	BaseUnitPrice decimal.Decimal `json:"base_unit_price"`
	LaborHours    decimal.Decimal `json:"labor_hours"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	LineSubtotal  decimal.Decimal `json:"line_subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
	AsOf          time.Time       `json:"as_of"`
	Jurisdiction  string          `json:"jurisdiction,omitempty"`
}

var oneHundred = decimal.NewFromInt(100)

// Resolve calcula la cotización a partir del snapshot. Función pura: mismas
// entradas, salida idéntica byte a byte.
//
// Orden de fallos: servicio desconocido > oculto por el tenant > inactivo.
// Un override hidden gana aunque el maestro esté inactivo; un maestro ausente
// sigue siendo ErrServiceUnknown aunque exista una fila de override huérfana.
func Resolve(snap Snapshot, req Request, mode RoundingMode) (*Quote, error) {
	if snap.Service == nil {
		return nil, domain.ErrServiceUnknown
	}
	if snap.Override != nil && snap.Override.AdjustmentKind == entity.AdjustHidden {
		return nil, domain.ErrServiceHidden
	}
	if !snap.Service.Active {
		return nil, domain.ErrServiceInactive
	}
	if req.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	baseUnit := adjustedBasePrice(snap.Service.BasePrice, snap.Override)

	laborHours := snap.Service.BaseLaborHours.Mul(req.Quantity)
	laborCost := laborHours.Mul(snap.LaborRate).RoundBank(4)
	subtotal := baseUnit.Mul(req.Quantity).RoundBank(4).Add(laborCost)

	taxAmount := mode.round2(subtotal.Mul(snap.TaxRate))
	total := mode.round2(subtotal).Add(taxAmount)

	return &Quote{
		ServiceCode:   snap.Service.Code,
		Quantity:      req.Quantity,
		BaseUnitPrice: baseUnit,
		LaborHours:    laborHours,
		LaborCost:     laborCost,
		LineSubtotal:  subtotal,
		TaxRate:       snap.TaxRate,
		TaxAmount:     taxAmount,
		Total:         total,
		AsOf:          req.AsOf,
		Jurisdiction:  req.Jurisdiction,
	}, nil
}

// adjustedBasePrice aplica el override al precio base maestro (4dp, nunca negativo).
func adjustedBasePrice(base decimal.Decimal, ov *entity.CompanyService) decimal.Decimal {
	if ov == nil {
		return base
	}
	switch ov.AdjustmentKind {
	case entity.AdjustPercent:
		adjusted := base.Mul(decimal.NewFromInt(1).Add(ov.AdjustmentValue.Div(oneHundred))).RoundBank(4)
		if adjusted.IsNegative() {
			return decimal.Zero
		}
		return adjusted
	case entity.AdjustAbsolute:
		return ov.AdjustmentValue
	default:
		return base
	}
}
