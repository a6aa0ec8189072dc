package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada (compra/reposición)
	MovementTypeOUT        = "OUT"        // salida manual
	MovementTypeSALE       = "SALE"       // salida por venta
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (conteo físico)
)

// InventoryMovement registro de auditoría de cada cambio de stock.
// Quantity es positivo en entradas y negativo en salidas.
type InventoryMovement struct {
	ID            string
	TransactionID string // referencia a la venta u operación que lo originó
	MedicineID    string
	Type          string
	Quantity      int64
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
