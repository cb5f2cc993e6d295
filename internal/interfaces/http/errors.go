package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/editor"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

// userMessager errores que traen un mensaje propio para el usuario (ej. el del backend).
type userMessager interface {
	UserMessage() string
}

// writeError traduce errores de dominio a status HTTP y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var vf *order.ValidationFailedError
	if errors.As(err, &vf) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: domain.ErrValidationFailed.Error(),
			Details: editor.ValidationDetails(vf),
		})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		status, code = fiber.StatusForbidden, "ACCESS_DENIED"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrLineNotFound):
		status, code = fiber.StatusNotFound, "LINE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidOperation):
		status, code = fiber.StatusConflict, "INVALID_OPERATION"
	case errors.Is(err, domain.ErrEditorBusy):
		status, code = fiber.StatusConflict, "EDITOR_BUSY"
	case errors.Is(err, domain.ErrBackendRejected):
		status, code = fiber.StatusUnprocessableEntity, "BACKEND_REJECTED"
	case errors.Is(err, domain.ErrBackendUnavailable):
		status, code = fiber.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"
	}

	msg := err.Error()
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		msg = um.UserMessage()
	}
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// parseBody lee y valida el cuerpo JSON. Devuelve false si ya respondió con 400.
func parseBody(c *fiber.Ctx, v *requestValidator, in any) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := v.Validate(in); fields != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: fields,
		})
	}
	return true, nil
}
