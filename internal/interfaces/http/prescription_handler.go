package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
)

// PrescriptionHandler maneja las fórmulas médicas, incluido el despacho.
type PrescriptionHandler struct {
	uc     *usecase.PrescriptionUseCase
	saleUC *sales.SaleUseCase
}

// NewPrescriptionHandler construye el handler.
func NewPrescriptionHandler(uc *usecase.PrescriptionUseCase, saleUC *sales.SaleUseCase) *PrescriptionHandler {
	return &PrescriptionHandler{uc: uc, saleUC: saleUC}
}

// Create godoc
// @Summary      Registrar fórmula médica
// @Tags         prescriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrescriptionRequest  true  "Fórmula con sus líneas"
// @Success      201   {object}  dto.PrescriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prescriptions [post]
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrescriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener fórmula por ID
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la fórmula"
// @Success      200  {object}  dto.PrescriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id} [get]
func (h *PrescriptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fórmulas
// @Tags         prescriptions
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "PENDING | FILLED | PARTIAL | CANCELLED"
// @Param        customer_id  query  string  false  "ID del cliente"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.PrescriptionResponse
// @Router       /api/prescriptions [get]
func (h *PrescriptionHandler) List(c *fiber.Ctx) error {
	var in dto.ListPrescriptionsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular fórmula PENDING
// @Tags         prescriptions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la fórmula"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id}/cancel [post]
func (h *PrescriptionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Fill godoc
// @Summary      Despachar fórmula (genera la venta)
// @Tags         prescriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la fórmula"
// @Param        body  body  dto.FillPrescriptionRequest  false  "Método de pago y descuento"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prescriptions/{id}/fill [post]
func (h *PrescriptionHandler) Fill(c *fiber.Ctx) error {
	var in dto.FillPrescriptionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.saleUC.FillPrescription(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
