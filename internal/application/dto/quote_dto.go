package dto

import (
	"time"

	"github.com/servicepros/pricebook-api/internal/domain/pricing"
)

// QuoteRequest parámetros de cotización vía query string.
type QuoteRequest struct {
	Quantity     string `query:"quantity"`     // decimal >= 0, default 1
	AsOf         string `query:"as_of"`        // RFC3339, default now
	Jurisdiction string `query:"jurisdiction"` // opcional
}

// RecalculateRequest cotiza varios servicios bajo el mismo snapshot.
type RecalculateRequest struct {
	ServiceCodes []string   `json:"service_codes"`
	Quantity     string     `json:"quantity,omitempty"`
	AsOf         *time.Time `json:"as_of,omitempty"`
	Jurisdiction string     `json:"jurisdiction,omitempty"`
}

// RecalculateItem resultado por servicio; Quote o Error, nunca ambos.
type RecalculateItem struct {
	ServiceCode string         `json:"service_code"`
	Quote       *pricing.Quote `json:"quote,omitempty"`
	Error       string         `json:"error,omitempty"` // código de error estable
}

// RecalculateResponse resultados del batch bajo un único snapshot de lectura.
type RecalculateResponse struct {
	AsOf  time.Time         `json:"as_of"`
	Items []RecalculateItem `json:"items"`
}
