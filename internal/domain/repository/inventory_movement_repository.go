package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// InventoryMovementRepository define el puerto para el registro de auditoría de stock.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByMedicine(medicineID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
