package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/application/editor"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
)

// EditorHandler borradores de venta y compra.
type EditorHandler struct {
	svc       *editor.Service
	validator *requestValidator
}

func NewEditorHandler(svc *editor.Service, v *requestValidator) *EditorHandler {
	return &EditorHandler{svc: svc, validator: v}
}

// session devuelve la sesión o responde 401.
func (h *EditorHandler) session(c *fiber.Ctx) (*entity.Session, error) {
	sess := GetSession(c)
	if sess == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return sess, nil
}

func lineIndex(c *fiber.Ctx) (int, bool) {
	idx, err := c.ParamsInt("index")
	if err != nil {
		return 0, false
	}
	return idx, true
}

func badIndex(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
}

func respond(c *fiber.Ctx, out *dto.EditorResponse, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Open godoc
// @Summary      Abrir un editor de venta o compra
// @Tags         editors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenEditorRequest  true  "mode: sale | purchase"
// @Success      201   {object}  dto.EditorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/editors [post]
func (h *EditorHandler) Open(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	var in dto.OpenEditorRequest
	if ok, err := parseBody(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.svc.Open(c.UserContext(), sess, in.Mode)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado del borrador con sus opciones
// @Tags         editors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "editor"
// @Success      200  {object}  dto.EditorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/editors/{id} [get]
func (h *EditorHandler) Get(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	out, err := h.svc.Get(c.UserContext(), sess, c.Params("id"))
	return respond(c, out, err)
}

// Cancel godoc
// @Summary      Cancelar el editor (descarta el borrador)
// @Tags         editors
// @Security     BearerAuth
// @Param        id   path  string  true  "editor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/editors/{id} [delete]
func (h *EditorHandler) Cancel(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	if err := h.svc.Cancel(c.UserContext(), sess, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLine POST /api/editors/:id/lines
func (h *EditorHandler) AddLine(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	out, err := h.svc.AddLine(c.UserContext(), sess, c.Params("id"))
	return respond(c, out, err)
}

// RemoveLine DELETE /api/editors/:id/lines/:index
func (h *EditorHandler) RemoveLine(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	idx, ok := lineIndex(c)
	if !ok {
		return badIndex(c)
	}
	out, err := h.svc.RemoveLine(c.UserContext(), sess, c.Params("id"), idx)
	return respond(c, out, err)
}

// SetProduct PUT /api/editors/:id/lines/:index/product
func (h *EditorHandler) SetProduct(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	idx, ok := lineIndex(c)
	if !ok {
		return badIndex(c)
	}
	var in dto.SetProductRequest
	if ok, err := parseBody(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.svc.SetLineProduct(c.UserContext(), sess, c.Params("id"), idx, in.ProductRef)
	return respond(c, out, err)
}

// SetQuantity PUT /api/editors/:id/lines/:index/quantity
func (h *EditorHandler) SetQuantity(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	idx, ok := lineIndex(c)
	if !ok {
		return badIndex(c)
	}
	var in dto.SetQuantityRequest
	if ok, err := parseBody(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.svc.SetLineQuantity(c.UserContext(), sess, c.Params("id"), idx, in.Quantity.String())
	return respond(c, out, err)
}

// SetPrice PUT /api/editors/:id/lines/:index/price (solo compra)
func (h *EditorHandler) SetPrice(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	idx, ok := lineIndex(c)
	if !ok {
		return badIndex(c)
	}
	var in dto.SetPriceRequest
	if ok, err := parseBody(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.svc.SetLinePrice(c.UserContext(), sess, c.Params("id"), idx, in.UnitPrice.String())
	return respond(c, out, err)
}

// SetCounterparty PUT /api/editors/:id/counterparty
func (h *EditorHandler) SetCounterparty(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	var in dto.SetCounterpartyRequest
	if ok, err := parseBody(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.svc.SetCounterparty(c.UserContext(), sess, c.Params("id"), in.CounterpartyRef)
	return respond(c, out, err)
}

// SetReceiptType PUT /api/editors/:id/receipt-type
func (h *EditorHandler) SetReceiptType(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	var in dto.SetReceiptTypeRequest
	if ok, err := parseBody(c, h.validator, &in); !ok {
		return err
	}
	out, err := h.svc.SetReceiptType(c.UserContext(), sess, c.Params("id"), in.ReceiptType)
	return respond(c, out, err)
}

// Validate godoc
// @Summary      Validar el borrador sin enviarlo
// @Tags         editors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "editor"
// @Success      200  {object}  dto.ValidationResponse
// @Router       /api/editors/{id}/validation [get]
func (h *EditorHandler) Validate(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	out, err := h.svc.Validate(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Registrar la venta o compra en el backend
// @Tags         editors
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "editor"
// @Success      201  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse  "EDITOR_BUSY"
// @Failure      422  {object}  dto.ErrorResponse  "VALIDATION_FAILED o BACKEND_REJECTED"
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/editors/{id}/submit [post]
func (h *EditorHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	out, err := h.svc.Submit(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview godoc
// @Summary      Vista previa PDF del borrador
// @Tags         editors
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  string  true  "editor"
// @Success      200
// @Router       /api/editors/{id}/preview.pdf [get]
func (h *EditorHandler) Preview(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}
	pdf, err := h.svc.Preview(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="borrador.pdf"`)
	return c.Send(pdf)
}
