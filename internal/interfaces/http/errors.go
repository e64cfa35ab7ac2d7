package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/servicepros/pricebook-api/internal/application/dto"
	"github.com/servicepros/pricebook-api/internal/domain"
)

// writeError traduce la taxonomía de errores de dominio al contrato HTTP
// estable {code, message}. Un error desconocido jamás filtra detalles internos.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConstraint):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrScopeViolation):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SCOPE_VIOLATION", Message: "acceso cross-tenant denegado"})
	case errors.Is(err, domain.ErrServiceHidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SERVICE_HIDDEN", Message: "servicio oculto para esta empresa"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrServiceUnknown):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SERVICE_UNKNOWN", Message: "servicio no existe en el catálogo maestro"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_TAKEN", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	case errors.Is(err, domain.ErrServiceInactive):
		return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "SERVICE_INACTIVE", Message: "servicio inactivo en el catálogo maestro"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacenamiento no disponible, reintente"})
	case errors.Is(err, domain.ErrTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "tiempo de espera agotado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
