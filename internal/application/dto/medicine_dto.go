package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMedicineRequest body para POST /api/medicines.
type CreateMedicineRequest struct {
	Name          string          `json:"name"`
	GenericName   string          `json:"generic_name,omitempty"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
}

// UpdateMedicineRequest body para PUT /api/medicines/:id.
// No permite modificar Quantity ni Cost (se manejan vía movimientos/ventas).
type UpdateMedicineRequest struct {
	Name          string          `json:"name"`
	GenericName   string          `json:"generic_name,omitempty"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	MinStockLevel int64           `json:"min_stock_level"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
}

// ListMedicinesRequest query params del listado.
type ListMedicinesRequest struct {
	PageRequest
	Search       string `query:"search"`
	Category     string `query:"category"`
	LowStock     bool   `query:"low_stock"`
	ExpiringDays int    `query:"expiring_days"`
}

// MedicineResponse medicamento en respuestas.
type MedicineResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	GenericName   string          `json:"generic_name,omitempty"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	LowStock      bool            `json:"low_stock"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
