package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// FillPrescription despacha una fórmula PENDING generando la venta asociada.
// El carrito se arma con las líneas de la fórmula al precio vigente de cada
// medicamento (no al precio del momento de la prescripción) y sin descuento
// por línea. La transición PENDING → FILLED ocurre dentro de la misma
// transacción que el decremento de stock: si la venta aborta, la fórmula
// sigue despachable.
func (uc *SaleUseCase) FillPrescription(ctx context.Context, cashierID, prescriptionID string, in dto.FillPrescriptionRequest) (*dto.SaleResponse, error) {
	if cashierID == "" {
		return nil, fmt.Errorf("%w: cajero requerido", domain.ErrInvalidInput)
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentMethodCash
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, paymentMethod)
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}

	prescription, err := uc.prescriptionRepo.GetByIDWithItems(prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, fmt.Errorf("%w: fórmula %s", domain.ErrNotFound, prescriptionID)
	}
	if prescription.Status != entity.PrescriptionStatusPending {
		return nil, fmt.Errorf("%w: la fórmula está en estado %s", domain.ErrInvalidState, prescription.Status)
	}
	if len(prescription.Items) == 0 {
		return nil, fmt.Errorf("%w: la fórmula no tiene líneas", domain.ErrInvalidInput)
	}

	var customerName string
	if prescription.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(prescription.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			customerName = customer.Name
		}
	}

	lines := make([]cartLine, 0, len(prescription.Items))
	for _, item := range prescription.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		med, err := uc.medicineRepo.GetByID(item.MedicineID)
		if err != nil {
			return nil, err
		}
		if med == nil {
			return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, item.MedicineID)
		}
		if med.Quantity < item.Quantity {
			return nil, &domain.InsufficientStockError{
				MedicineID:   med.ID,
				MedicineName: med.Name,
				Available:    med.Quantity,
				Requested:    item.Quantity,
			}
		}
		lines = append(lines, cartLine{
			medicine:  med,
			quantity:  item.Quantity,
			unitPrice: med.Price,
		})
	}

	sale := uc.buildSale(cashierID, prescription.CustomerID, prescription.ID, paymentMethod, in.Discount, "", lines)

	if err := uc.runSaleTx(ctx, sale, lines, prescription.ID); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SalesCreated.Inc()
	}
	return uc.toResponse(sale, customerName, lines), nil
}
