package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepros/pricebook-api/internal/application/catalog"
	"github.com/servicepros/pricebook-api/internal/application/dto"
)

// CatalogHandler maneja las peticiones HTTP del catálogo maestro (protegido).
// Las lecturas están abiertas a cualquier principal autenticado; las mutaciones
// exigen rol admin (a nivel de ruta y de caso de uso).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories godoc
// @Summary      Listar categorías del catálogo maestro
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        active_only  query  bool  false  "Solo activas"  default(true)
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", true)
	out, err := h.uc.ListCategories(c.Context(), activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSubcategories godoc
// @Summary      Listar subcategorías de una categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        cat          path   string  true   "Código de categoría"
// @Param        active_only  query  bool    false  "Solo activas"  default(true)
// @Success      200  {array}   dto.SubcategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/subcategories/{cat} [get]
func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	cat := c.Params("cat")
	activeOnly := c.QueryBool("active_only", true)
	out, err := h.uc.ListSubcategories(c.Context(), cat, activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListServices godoc
// @Summary      Listar servicios de una subcategoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        sub          path   string  true   "Código de subcategoría"
// @Param        active_only  query  bool    false  "Solo activos"  default(true)
// @Param        search       query  string  false  "Substring sobre nombre o código"
// @Success      200  {object}  dto.ServiceListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/services/{sub} [get]
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	sub := c.Params("sub")
	activeOnly := c.QueryBool("active_only", true)
	search := c.Query("search")
	out, err := h.uc.ListServices(c.Context(), sub, activeOnly, search)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetService godoc
// @Summary      Detalle de un servicio maestro
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/services/detail/{code} [get]
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	out, err := h.uc.GetService(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertCategory godoc
// @Summary      Crear o editar una categoría (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código de categoría"
// @Param        body  body  dto.UpsertCategoryRequest  true  "Datos"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{code} [put]
func (h *CatalogHandler) UpsertCategory(c *fiber.Ctx) error {
	var in dto.UpsertCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertCategory(c.Context(), ScopeFrom(c), c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertSubcategory godoc
// @Summary      Crear o editar una subcategoría (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código de subcategoría"
// @Param        body  body  dto.UpsertSubcategoryRequest  true  "Datos"
// @Success      200  {object}  dto.SubcategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/catalog/subcategories/{code} [put]
func (h *CatalogHandler) UpsertSubcategory(c *fiber.Ctx) error {
	var in dto.UpsertSubcategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertSubcategory(c.Context(), ScopeFrom(c), c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertService godoc
// @Summary      Crear o editar un servicio maestro (admin)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código de servicio"
// @Param        body  body  dto.UpsertServiceRequest  true  "Datos"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/catalog/services/{code} [put]
func (h *CatalogHandler) UpsertService(c *fiber.Ctx) error {
	var in dto.UpsertServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertService(c.Context(), ScopeFrom(c), c.Params("code"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
