package dto

import (
	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

// SaleItemRequest línea del carrito (medicamento, cantidad, precio unitario, descuento).
type SaleItemRequest struct {
	MedicineID string          `json:"medicine_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   decimal.Decimal `json:"discount,omitempty"`
}

// ListSalesRequest query params del listado de ventas.
type ListSalesRequest struct {
	PageRequest
	From          string `query:"from"` // YYYY-MM-DD
	To            string `query:"to"`
	PaymentMethod string `query:"payment_method"`
	CashierID     string `query:"cashier_id"`
	CustomerID    string `query:"customer_id"`
}

// SaleResponse venta con detalle para respuestas.
type SaleResponse struct {
	ID             string               `json:"id"`
	CustomerID     string               `json:"customer_id,omitempty"`
	CustomerName   string               `json:"customer_name,omitempty"`
	PrescriptionID string               `json:"prescription_id,omitempty"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Tax            decimal.Decimal      `json:"tax"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
	PaymentMethod  string               `json:"payment_method"`
	CashierID      string               `json:"cashier_id"`
	CashierName    string               `json:"cashier_name,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	SaleDate       string               `json:"sale_date"`
	Details        []SaleDetailResponse `json:"details"`
}

// SaleDetailResponse línea de la venta en respuestas.
type SaleDetailResponse struct {
	ID           string          `json:"id"`
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}
