package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine representa un medicamento del catálogo de la farmacia.
// Quantity es la única fuente de verdad del stock: se muta solamente vía
// la transacción de venta o los movimientos de inventario.
type Medicine struct {
	ID            string
	Name          string
	GenericName   string
	Category      string
	Description   string
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo promedio ponderado (inicia en 0)
	Quantity      int64           // unidades en stock; nunca negativo
	MinStockLevel int64           // umbral de alerta de bajo stock
	ExpiryDate    time.Time
	BatchNumber   string
	Manufacturer  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock actual está en o bajo el umbral mínimo.
func (m *Medicine) IsLowStock() bool {
	return m.Quantity <= m.MinStockLevel
}

// ExpiresWithin indica si el medicamento vence dentro de la ventana dada.
func (m *Medicine) ExpiresWithin(days int, now time.Time) bool {
	if m.ExpiryDate.IsZero() {
		return false
	}
	return !m.ExpiryDate.After(now.AddDate(0, 0, days))
}
