package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/application/pricing"
)

// QuoteHandler cotización de servicios para la empresa del principal.
type QuoteHandler struct {
	uc *pricing.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *pricing.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Quote godoc
// @Summary      Cotizar un servicio
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        code          path   string  true   "Código de servicio"
// @Param        quantity      query  string  false  "Cantidad decimal >= 0"  default(1)
// @Param        as_of         query  string  false  "Instante RFC3339"  default(ahora)
// @Param        jurisdiction  query  string  false  "Jurisdicción fiscal"
// @Param        company_id    query  string  false  "Otra empresa (solo admin con bypass)"
// @Success      200  {object}  pricing.Quote
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/services/{code}/quote [get]
func (h *QuoteHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}

	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un decimal >= 0"})
	}
	asOf := time.Now().UTC()
	if in.AsOf != "" {
		asOf, err = time.Parse(time.RFC3339, in.AsOf)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser RFC3339"})
		}
	}

	out, err := h.uc.Quote(c.Context(), ScopeFrom(c), targetCompany(c), c.Params("code"), qty, asOf, in.Jurisdiction)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recalculate godoc
// @Summary      Cotizar un lote de servicios bajo un único snapshot
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecalculateRequest  true  "Servicios y parámetros"
// @Success      200  {object}  dto.RecalculateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/quotes/recalculate [post]
func (h *QuoteHandler) Recalculate(c *fiber.Ctx) error {
	var in dto.RecalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.ServiceCodes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "service_codes es requerido"})
	}
	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un decimal >= 0"})
	}
	asOf := time.Now().UTC()
	if in.AsOf != nil {
		asOf = *in.AsOf
	}

	out, err := h.uc.Recalculate(c.Context(), ScopeFrom(c), targetCompany(c), in.ServiceCodes, qty, asOf, in.Jurisdiction)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseQuantity parsea la cantidad; vacía = 1. La no-negatividad la valida el
// caso de uso.
func parseQuantity(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(s)
}
