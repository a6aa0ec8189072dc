package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCounters conteos rápidos para el resumen del dashboard.
type DashboardCounters struct {
	SalesToday           int
	RevenueToday         decimal.Decimal
	LowStockCount        int
	ExpiringCount        int
	PendingPrescriptions int
	UnreadAlerts         int
}

// DailySalesRow ventas agregadas por día.
type DailySalesRow struct {
	Day      time.Time
	Count    int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// PaymentMethodRow ventas agregadas por método de pago.
type PaymentMethodRow struct {
	PaymentMethod string
	Count         int
	Total         decimal.Decimal
}

// TopMedicineRow medicamentos con mayor ingreso en el período.
type TopMedicineRow struct {
	MedicineID string
	Name       string
	UnitsSold  int64
	Revenue    decimal.Decimal
}

// AnalyticsRepository define las consultas de solo lectura para reportes y dashboard.
type AnalyticsRepository interface {
	GetDashboardCounters(ctx context.Context, now time.Time, expiryWindowDays int) (*DashboardCounters, error)
	GetDailySales(ctx context.Context, from, to time.Time) ([]DailySalesRow, error)
	GetSalesByPaymentMethod(ctx context.Context, from, to time.Time) ([]PaymentMethodRow, error)
	GetTopMedicines(ctx context.Context, from, to time.Time, limit int) ([]TopMedicineRow, error)
}
