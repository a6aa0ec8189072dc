package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// IN: requiere unit_cost >= 0. OUT: quantity > 0. ADJUSTMENT: quantity con signo.
type RegisterMovementRequest struct {
	MedicineID string           `json:"medicine_id"`
	Type       string           `json:"type"` // IN | OUT | ADJUSTMENT
	Quantity   int64            `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	MedicineID    string          `json:"medicine_id"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}
