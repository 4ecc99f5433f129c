package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
	"github.com/jhoicas/retail-analytics-api/internal/domain/policy"
)

// RequirePermission consulta la tabla de políticas para el rol dejado por
// AuthMiddleware. Sin rol en el contexto → 401 (falta autenticación);
// rol presente pero sin permiso → 403. La distinción importa: el 401 invita
// a autenticarse, el 403 es definitivo para ese rol.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "autenticación requerida"})
		}
		if !policy.Authorize(role, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida para el rol"})
		}
		return c.Next()
	}
}
