package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/application/overlay"
)

// OverrideHandler maneja los overrides de servicio de la empresa del principal.
// El query param opcional company_id permite a un admin (con bypass habilitado)
// leer el overlay de otra empresa; las escrituras cross-tenant las rechaza el
// Guard siempre.
type OverrideHandler struct {
	uc *overlay.UseCase
}

// NewOverrideHandler construye el handler.
func NewOverrideHandler(uc *overlay.UseCase) *OverrideHandler {
	return &OverrideHandler{uc: uc}
}

// List godoc
// @Summary      Listar los overrides de la empresa
// @Tags         overlay
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Otra empresa (solo admin con bypass)"
// @Success      200  {object}  dto.OverrideListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/overrides [get]
func (h *OverrideHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListOverrides(c.Context(), ScopeFrom(c), targetCompany(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener el override de un servicio
// @Tags         overlay
// @Security     Bearer
// @Produce      json
// @Param        code        path   string  true   "Código de servicio"
// @Param        company_id  query  string  false  "Otra empresa (solo admin con bypass)"
// @Success      200  {object}  dto.OverrideResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/overrides/{code} [get]
func (h *OverrideHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetOverride(c.Context(), ScopeFrom(c), targetCompany(c), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Crear o reemplazar el override de un servicio
// @Tags         overlay
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código de servicio"
// @Param        body  body  dto.SetOverrideRequest  true  "Ajuste: percent | absolute | hidden"
// @Success      200  {object}  dto.OverrideResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/company/overrides/{code} [put]
func (h *OverrideHandler) Set(c *fiber.Ctx) error {
	var in dto.SetOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetOverride(c.Context(), ScopeFrom(c), targetCompany(c), c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Eliminar el override (vuelta al precio maestro)
// @Tags         overlay
// @Security     Bearer
// @Param        code  path  string  true  "Código de servicio"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/overrides/{code} [delete]
func (h *OverrideHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.ClearOverride(c.Context(), ScopeFrom(c), targetCompany(c), c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
