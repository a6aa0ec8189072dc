package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// DashboardUseCase resumen operativo y reportes de ventas.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	expiryWindow  int
}

// NewDashboardUseCase construye el caso de uso. expiryWindowDays alimenta el
// contador de "próximos a vencer" del resumen.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, expiryWindowDays int) *DashboardUseCase {
	if expiryWindowDays <= 0 {
		expiryWindowDays = 30
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, expiryWindow: expiryWindowDays}
}

// Summary conteos rápidos para la pantalla de inicio.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	counters, err := uc.analyticsRepo.GetDashboardCounters(ctx, time.Now(), uc.expiryWindow)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		SalesToday:           counters.SalesToday,
		RevenueToday:         counters.RevenueToday,
		LowStockCount:        counters.LowStockCount,
		ExpiringCount:        counters.ExpiringCount,
		PendingPrescriptions: counters.PendingPrescriptions,
		UnreadAlerts:         counters.UnreadAlerts,
	}, nil
}

// SalesReport agrega las ventas de un rango [from, to]: serie diaria,
// desglose por método de pago y top de medicamentos por ingreso.
func (uc *DashboardUseCase) SalesReport(ctx context.Context, from, to time.Time) (*dto.SalesReportResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: rango de fechas requerido", domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}

	daily, err := uc.analyticsRepo.GetDailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byMethod, err := uc.analyticsRepo.GetSalesByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.analyticsRepo.GetTopMedicines(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:            from.Format("2006-01-02"),
		To:              to.Format("2006-01-02"),
		Daily:           make([]dto.DailySalesDTO, 0, len(daily)),
		ByPaymentMethod: make([]dto.PaymentMethodDTO, 0, len(byMethod)),
		TopMedicines:    make([]dto.TopMedicineDTO, 0, len(top)),
	}
	for _, d := range daily {
		resp.Daily = append(resp.Daily, dto.DailySalesDTO{
			Day:      d.Day.Format("2006-01-02"),
			Count:    d.Count,
			Subtotal: d.Subtotal,
			Tax:      d.Tax,
			Total:    d.Total,
		})
	}
	for _, m := range byMethod {
		resp.ByPaymentMethod = append(resp.ByPaymentMethod, dto.PaymentMethodDTO{
			PaymentMethod: m.PaymentMethod,
			Count:         m.Count,
			Total:         m.Total,
		})
	}
	for _, t := range top {
		resp.TopMedicines = append(resp.TopMedicines, dto.TopMedicineDTO{
			MedicineID: t.MedicineID,
			Name:       t.Name,
			UnitsSold:  t.UnitsSold,
			Revenue:    t.Revenue,
		})
	}
	return resp, nil
}
