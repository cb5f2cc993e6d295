package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/navigation"
)

// NavHandler menú y navegación entre secciones.
type NavHandler struct {
	svc *navigation.Service
}

func NewNavHandler(svc *navigation.Service) *NavHandler {
	return &NavHandler{svc: svc}
}

// Menu godoc
// @Summary      Menú visible para el rol y página activa
// @Tags         nav
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  dto.MenuResponse
// @Router       /api/nav [get]
func (h *NavHandler) Menu(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return c.JSON(h.svc.Menu(sess))
}

// Navigate godoc
// @Summary      Navegar a una sección
// @Description  Si el rol no tiene acceso se redirige al dashboard (redirected=true). Sin dashboard: 403.
// @Tags         nav
// @Security     BearerAuth
// @Produce      json
// @Param        page  path  string  true  "sección (dashboard, products, sales, ...)"
// @Success      200   {object}  dto.NavigateResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/nav/{page} [post]
func (h *NavHandler) Navigate(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.svc.Navigate(c.UserContext(), sess, c.Params("page"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
