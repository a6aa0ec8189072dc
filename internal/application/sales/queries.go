package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// GetSale devuelve una venta con su detalle y los nombres expandidos.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	details, err := uc.saleRepo.GetDetailsBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}
	for _, d := range details {
		sale.Details = append(sale.Details, *d)
	}

	lines := make([]cartLine, 0, len(sale.Details))
	for _, d := range sale.Details {
		med, err := uc.medicineRepo.GetByID(d.MedicineID)
		if err != nil {
			return nil, err
		}
		if med == nil {
			med = &entity.Medicine{ID: d.MedicineID}
		}
		lines = append(lines, cartLine{medicine: med, quantity: d.Quantity})
	}

	var customerName string
	if sale.CustomerID != "" {
		if customer, err := uc.customerRepo.GetByID(sale.CustomerID); err == nil && customer != nil {
			customerName = customer.Name
		}
	}
	return uc.toResponse(sale, customerName, lines), nil
}

// ListSales devuelve cabeceras de venta según el filtro, sin detalle.
func (uc *SaleUseCase) ListSales(ctx context.Context, filter repository.SaleFilter) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SaleResponse{
			ID:             s.ID,
			CustomerID:     s.CustomerID,
			PrescriptionID: s.PrescriptionID,
			Subtotal:       s.Subtotal,
			Tax:            s.Tax,
			Discount:       s.Discount,
			Total:          s.Total,
			PaymentMethod:  s.PaymentMethod,
			CashierID:      s.CashierID,
			Notes:          s.Notes,
			SaleDate:       s.SaleDate.Format("2006-01-02 15:04:05"),
			Details:        []dto.SaleDetailResponse{},
		})
	}
	return out, nil
}
