package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertCategoryRequest alta/edición de categoría (solo admin).
type UpsertCategoryRequest struct {
	Name   string `json:"name"`
	Sort   int    `json:"sort"`
	Active *bool  `json:"active"` // nil = true en creación, sin cambio en edición
}

// CategoryResponse categoría del catálogo maestro.
type CategoryResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Sort      int       `json:"sort"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertSubcategoryRequest alta/edición de subcategoría (solo admin).
type UpsertSubcategoryRequest struct {
	CategoryCode string `json:"category_code"`
	Name         string `json:"name"`
	Sort         int    `json:"sort"`
	Active       *bool  `json:"active"`
}

// SubcategoryResponse subcategoría del catálogo maestro.
type SubcategoryResponse struct {
	Code         string    `json:"code"`
	CategoryCode string    `json:"category_code"`
	Name         string    `json:"name"`
	Sort         int       `json:"sort"`
	Active       bool      `json:"active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpsertServiceRequest alta/edición de servicio maestro (solo admin).
type UpsertServiceRequest struct {
	SubcategoryCode string           `json:"subcategory_code"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	BasePrice       *decimal.Decimal `json:"base_price"`
	BaseLaborHours  *decimal.Decimal `json:"base_labor_hours"`
	Unit            string           `json:"unit"`
	Active          *bool            `json:"active"`
}

// ServiceResponse servicio del catálogo maestro.
type ServiceResponse struct {
	Code            string          `json:"code"`
	SubcategoryCode string          `json:"subcategory_code"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	BaseLaborHours  decimal.Decimal `json:"base_labor_hours"`
	Unit            string          `json:"unit"`
	Active          bool            `json:"active"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ServiceListResponse listado de servicios.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
}
