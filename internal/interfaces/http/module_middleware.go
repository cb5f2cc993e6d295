package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
)

// pageChecker es el contrato mínimo que necesita el middleware. Lo implementa *access.Policy.
type pageChecker interface {
	IsAllowed(role access.Role, page access.Page) bool
}

// RequirePage devuelve un middleware que exige que el rol tenga acceso a alguna de las
// páginas indicadas. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
//   - 401 si no hay sesión en el contexto.
//   - 403 ACCESS_DENIED si ninguna página está permitida para el rol.
func RequirePage(checker pageChecker, pages ...access.Page) fiber.Handler {
	names := make([]string, 0, len(pages))
	for _, p := range pages {
		names = append(names, string(p))
	}
	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sesión no encontrada en el contexto",
			})
		}
		role := access.Role(GetRole(c))
		for _, p := range pages {
			if checker.IsAllowed(role, p) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "ACCESS_DENIED",
			Message: "el rol no tiene acceso a: " + strings.Join(names, ", "),
		})
	}
}
