package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
)

// InventoryHandler maneja movimientos de inventario y el barrido de vencimientos.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario (IN / OUT / ADJUSTMENT)
// @Description  IN recalcula el costo promedio ponderado; OUT y ADJUSTMENT nunca dejan stock negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de un medicamento (movimientos, más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        medicine_id  path   string  true   "ID del medicamento"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements/{medicine_id} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.ListMovements(c.UserContext(), c.Params("medicine_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpiryScan godoc
// @Summary      Barrer vencimientos y generar alertas EXPIRY (solo admin)
// @Description  Idempotente: no duplica alertas no leídas del mismo medicamento.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpiryScanResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/alerts/expiry-scan [post]
func (h *InventoryHandler) ExpiryScan(c *fiber.Ctx) error {
	out, err := h.uc.ExpiryScan(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
