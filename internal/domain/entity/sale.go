package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el punto de venta.
const (
	PaymentMethodCash      = "CASH"
	PaymentMethodCard      = "CARD"
	PaymentMethodInsurance = "INSURANCE"
	PaymentMethodCredit    = "CREDIT"
)

// ValidPaymentMethod valida el método de pago contra el enum.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodInsurance, PaymentMethodCredit:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta. Inmutable una vez creada:
// no existe operación de actualización ni anulación.
type Sale struct {
	ID             string
	CustomerID     string // vacío = venta de mostrador sin cliente
	PrescriptionID string // vacío = venta directa
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  string
	CashierID      string
	Notes          string
	SaleDate       time.Time
	CreatedAt      time.Time
	Details        []SaleDetail
}

// SaleDetail una línea de la venta. Se persiste junto con la cabecera,
// nunca de forma independiente.
type SaleDetail struct {
	ID         string
	SaleID     string
	MedicineID string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	Subtotal   decimal.Decimal
}
