package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// MedicineFilter filtros dinámicos del listado de medicamentos.
type MedicineFilter struct {
	Search       string // término normalizado (sin tildes, minúsculas)
	Category     string
	LowStock     bool // solo quantity <= min_stock_level
	ExpiringDays int  // 0 = sin filtro; >0 = vencen dentro de N días
	Limit        int
	Offset       int
}

// MedicineRepository define el puerto de persistencia para Medicine (DIP).
// El stock vive en la columna quantity; decrementos y bloqueos van por aquí.
type MedicineRepository interface {
	Create(medicine *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	GetByName(name string) (*entity.Medicine, error)
	Update(medicine *entity.Medicine) error
	UpdateCost(medicineID string, cost decimal.Decimal) error
	List(filter MedicineFilter) ([]*entity.Medicine, error)
	Delete(id string) error

	// GetForUpdate bloquea la fila del medicamento (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Medicine, error)
	// AdjustQuantity aplica un delta al stock. El UPDATE lleva el guard
	// quantity + delta >= 0; si no afecta filas retorna ErrInsufficientStock.
	AdjustQuantity(id string, delta int64) (newQuantity int64, err error)
}
