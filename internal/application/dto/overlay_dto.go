package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetOverrideRequest upsert de un override de servicio para la empresa del scope.
type SetOverrideRequest struct {
	Kind  string          `json:"kind"` // percent | absolute | hidden
	Value decimal.Decimal `json:"value"`
	Note  string          `json:"note"`
}

// OverrideResponse override vigente.
type OverrideResponse struct {
	CompanyID   string          `json:"company_id"`
	ServiceCode string          `json:"service_code"`
	Kind        string          `json:"kind"`
	Value       decimal.Decimal `json:"value"`
	Note        string          `json:"note,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OverrideListResponse todos los overrides de la empresa.
type OverrideListResponse struct {
	Items []OverrideResponse `json:"items"`
}

// SetLaborRateRequest alta de tarifa de mano de obra con vigencia.
type SetLaborRateRequest struct {
	EffectiveFrom time.Time       `json:"effective_from"`
	RatePerHour   decimal.Decimal `json:"rate_per_hour"`
}

// LaborRateResponse tarifa registrada.
type LaborRateResponse struct {
	CompanyID     string          `json:"company_id"`
	EffectiveFrom time.Time       `json:"effective_from"`
	RatePerHour   decimal.Decimal `json:"rate_per_hour"`
}

// SetTaxRateRequest alta de tasa de impuesto con vigencia y jurisdicción.
type SetTaxRateRequest struct {
	Jurisdiction  string          `json:"jurisdiction"` // "" = jurisdicción por defecto
	EffectiveFrom time.Time       `json:"effective_from"`
	Rate          decimal.Decimal `json:"rate"` // 0 <= r <= 1
}

// TaxRateResponse tasa registrada.
type TaxRateResponse struct {
	CompanyID     string          `json:"company_id"`
	Jurisdiction  string          `json:"jurisdiction"`
	EffectiveFrom time.Time       `json:"effective_from"`
	Rate          decimal.Decimal `json:"rate"`
}
