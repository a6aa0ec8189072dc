package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse resumen rápido para la pantalla de inicio.
type DashboardSummaryResponse struct {
	SalesToday           int             `json:"sales_today"`
	RevenueToday         decimal.Decimal `json:"revenue_today"`
	LowStockCount        int             `json:"low_stock_count"`
	ExpiringCount        int             `json:"expiring_count"`
	PendingPrescriptions int             `json:"pending_prescriptions"`
	UnreadAlerts         int             `json:"unread_alerts"`
}

// SalesReportResponse reporte de ventas de un rango de fechas.
type SalesReportResponse struct {
	From            string                `json:"from"`
	To              string                `json:"to"`
	Daily           []DailySalesDTO       `json:"daily"`
	ByPaymentMethod []PaymentMethodDTO    `json:"by_payment_method"`
	TopMedicines    []TopMedicineDTO      `json:"top_medicines"`
}

// DailySalesDTO ventas de un día.
type DailySalesDTO struct {
	Day      string          `json:"day"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentMethodDTO ventas agregadas por método de pago.
type PaymentMethodDTO struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// TopMedicineDTO medicamentos más vendidos del rango.
type TopMedicineDTO struct {
	MedicineID string          `json:"medicine_id"`
	Name       string          `json:"name"`
	UnitsSold  int64           `json:"units_sold"`
	Revenue    decimal.Decimal `json:"revenue"`
}
