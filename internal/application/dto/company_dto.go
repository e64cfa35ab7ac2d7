package dto

import "time"

// CreateCompanyRequest alta de empresa (tenant). La moneda queda fija.
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // IANA, ej. "America/Denver"
	Currency string `json:"currency"` // ISO 4217, ej. "USD"
}

// CompanyResponse empresa registrada.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
