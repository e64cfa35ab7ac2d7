package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/application/overlay"
)

// RateHandler maneja las tarifas con vigencia de la empresa: mano de obra e
// impuestos por jurisdicción.
type RateHandler struct {
	uc *overlay.UseCase
}

// NewRateHandler construye el handler.
func NewRateHandler(uc *overlay.UseCase) *RateHandler {
	return &RateHandler{uc: uc}
}

// ListLaborRates godoc
// @Summary      Listar tarifas de mano de obra
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LaborRateResponse
// @Router       /api/company/labor-rates [get]
func (h *RateHandler) ListLaborRates(c *fiber.Ctx) error {
	out, err := h.uc.ListLaborRates(c.Context(), ScopeFrom(c), targetCompany(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetLaborRate godoc
// @Summary      Registrar una tarifa de mano de obra con vigencia
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetLaborRateRequest  true  "Tarifa"
// @Success      201  {object}  dto.LaborRateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/labor-rates [post]
func (h *RateHandler) SetLaborRate(c *fiber.Ctx) error {
	var in dto.SetLaborRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetLaborRate(c.Context(), ScopeFrom(c), targetCompany(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteLaborRate godoc
// @Summary      Eliminar una tarifa de mano de obra por vigencia exacta
// @Tags         rates
// @Security     Bearer
// @Param        effective_from  query  string  true  "RFC3339"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/labor-rates [delete]
func (h *RateHandler) DeleteLaborRate(c *fiber.Ctx) error {
	from, ok := parseRFC3339(c.Query("effective_from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_from RFC3339 requerido"})
	}
	if err := h.uc.DeleteLaborRate(c.Context(), ScopeFrom(c), targetCompany(c), from); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTaxRates godoc
// @Summary      Listar tasas de impuesto (todas las jurisdicciones)
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TaxRateResponse
// @Router       /api/company/tax-rates [get]
func (h *RateHandler) ListTaxRates(c *fiber.Ctx) error {
	out, err := h.uc.ListTaxRates(c.Context(), ScopeFrom(c), targetCompany(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetTaxRate godoc
// @Summary      Registrar una tasa de impuesto con vigencia y jurisdicción
// @Tags         rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetTaxRateRequest  true  "Tasa (jurisdiction vacía = por defecto)"
// @Success      201  {object}  dto.TaxRateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/tax-rates [post]
func (h *RateHandler) SetTaxRate(c *fiber.Ctx) error {
	var in dto.SetTaxRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetTaxRate(c.Context(), ScopeFrom(c), targetCompany(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteTaxRate godoc
// @Summary      Eliminar una tasa de impuesto por jurisdicción y vigencia exacta
// @Tags         rates
// @Security     Bearer
// @Param        jurisdiction    query  string  false  "Vacía = por defecto"
// @Param        effective_from  query  string  true   "RFC3339"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/tax-rates [delete]
func (h *RateHandler) DeleteTaxRate(c *fiber.Ctx) error {
	from, ok := parseRFC3339(c.Query("effective_from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "effective_from RFC3339 requerido"})
	}
	if err := h.uc.DeleteTaxRate(c.Context(), ScopeFrom(c), targetCompany(c), c.Query("jurisdiction"), from); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseRFC3339 parsea un instante RFC3339 de query string.
func parseRFC3339(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
