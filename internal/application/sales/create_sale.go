// Package sales implementa la transacción de venta: validación de stock,
// cálculo de totales, decremento atómico de inventario, registro de la venta
// y generación de alertas de bajo stock, todo en una sola transacción.
package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/alerting"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/metrics"
)

// TaxRate impuesto fijo del 10% sobre el subtotal. Constante del sistema,
// no configurable.
var TaxRate = decimal.NewFromFloat(0.10)

// SaleUseCase registra ventas directas y despachos de fórmulas médicas.
type SaleUseCase struct {
	txRunner         SaleTxRunner
	medicineRepo     repository.MedicineRepository
	customerRepo     repository.CustomerRepository
	prescriptionRepo repository.PrescriptionRepository
	saleRepo         repository.SaleRepository
	userRepo         repository.UserRepository
	metrics          *metrics.ServerMetrics // opcional; nil en tests
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	medicineRepo repository.MedicineRepository,
	customerRepo repository.CustomerRepository,
	prescriptionRepo repository.PrescriptionRepository,
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	m *metrics.ServerMetrics,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:         txRunner,
		medicineRepo:     medicineRepo,
		customerRepo:     customerRepo,
		prescriptionRepo: prescriptionRepo,
		saleRepo:         saleRepo,
		userRepo:         userRepo,
		metrics:          m,
	}
}

// cartLine línea validada del carrito, con el medicamento ya cargado.
type cartLine struct {
	medicine  *entity.Medicine
	quantity  int64
	unitPrice decimal.Decimal
	discount  decimal.Decimal
}

// CreateSale valida el carrito, calcula totales y aplica los efectos atómicos:
// decremento de stock, venta con detalle, movimientos de auditoría y alertas.
// Ningún efecto se aplica si la validación falla o la transacción aborta.
func (uc *SaleUseCase) CreateSale(ctx context.Context, cashierID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if cashierID == "" {
		return nil, fmt.Errorf("%w: cajero requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}

	// Cliente opcional; si viene, debe existir.
	var customerName string
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		customerName = customer.Name
	}

	// Validación del carrito fuera de la tx (solo lectura). Todo-o-nada:
	// cualquier línea corta rechaza la venta completa sin tocar stock.
	lines := make([]cartLine, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		if !item.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: precio unitario debe ser positivo", domain.ErrInvalidInput)
		}
		if item.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: descuento de línea negativo", domain.ErrInvalidInput)
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
			unitPrice: item.UnitPrice,
			discount:  item.Discount,
		})
	}

	sale := uc.buildSale(cashierID, in.CustomerID, "", in.PaymentMethod, in.Discount, in.Notes, lines)

	if err := uc.runSaleTx(ctx, sale, lines, ""); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SalesCreated.Inc()
	}
	return uc.toResponse(sale, customerName, lines), nil
}

// buildSale arma la entidad con los totales calculados.
// subtotal = Σ (qty·precio − descuento_línea); tax = subtotal × 10%;
// total = subtotal + tax − descuento_global.
func (uc *SaleUseCase) buildSale(cashierID, customerID, prescriptionID, paymentMethod string, discount decimal.Decimal, notes string, lines []cartLine) *entity.Sale {
	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		PrescriptionID: prescriptionID,
		Discount:       discount,
		PaymentMethod:  paymentMethod,
		CashierID:      cashierID,
		Notes:          notes,
		SaleDate:       now,
		CreatedAt:      now,
	}

	subtotal := decimal.Zero
	for _, ln := range lines {
		lineSubtotal := decimal.NewFromInt(ln.quantity).Mul(ln.unitPrice).Sub(ln.discount)
		subtotal = subtotal.Add(lineSubtotal)
		sale.Details = append(sale.Details, entity.SaleDetail{
			ID:         uuid.New().String(),
			SaleID:     sale.ID,
			MedicineID: ln.medicine.ID,
			Quantity:   ln.quantity,
			UnitPrice:  ln.unitPrice,
			Discount:   ln.discount,
			Subtotal:   lineSubtotal,
		})
	}
	sale.Subtotal = subtotal
	sale.Tax = subtotal.Mul(TaxRate)
	sale.Total = subtotal.Add(sale.Tax).Sub(discount)
	return sale
}

// runSaleTx ejecuta los efectos atómicos. El chequeo definitivo de stock
// ocurre aquí, bajo SELECT FOR UPDATE: el chequeo previo fuera de la tx es
// solo para fallar temprano, y dos ventas concurrentes no pueden sobregirar
// porque la segunda espera el lock y re-valida contra el stock ya
// decrementado. Si prescriptionID no es vacío, la transición
// PENDING → FILLED participa de la misma transacción.
func (uc *SaleUseCase) runSaleTx(ctx context.Context, sale *entity.Sale, lines []cartLine, prescriptionID string) error {
	alertsRaised := 0
	err := uc.txRunner.RunSale(ctx, func(
		medicineRepo repository.MedicineRepository,
		saleRepo repository.SaleRepository,
		alertRepo repository.AlertRepository,
		movementRepo repository.InventoryMovementRepository,
		presRepo repository.PrescriptionRepository,
	) error {
		// Bloqueo en orden ascendente de ID para que dos ventas concurrentes
		// con medicamentos en común no se bloqueen mutuamente (deadlock).
		ordered := make([]cartLine, len(lines))
		copy(ordered, lines)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].medicine.ID < ordered[j].medicine.ID
		})

		now := sale.SaleDate
		for _, ln := range ordered {
			locked, err := medicineRepo.GetForUpdate(ln.medicine.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, ln.medicine.ID)
			}
			if locked.Quantity < ln.quantity {
				return &domain.InsufficientStockError{
					MedicineID:   locked.ID,
					MedicineName: locked.Name,
					Available:    locked.Quantity,
					Requested:    ln.quantity,
				}
			}

			newQty, err := medicineRepo.AdjustQuantity(locked.ID, -ln.quantity)
			if err != nil {
				return err
			}

			mov := &entity.InventoryMovement{
				ID:            uuid.New().String(),
				TransactionID: sale.ID,
				MedicineID:    locked.ID,
				Type:          entity.MovementTypeSALE,
				Quantity:      -ln.quantity,
				UnitCost:      locked.Cost,
				TotalCost:     locked.Cost.Mul(decimal.NewFromInt(-ln.quantity)),
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     sale.CashierID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}

			raised, err := alerting.RaiseLowStock(alertRepo, locked, newQty, now)
			if err != nil {
				return err
			}
			if raised {
				alertsRaised++
			}
		}

		if prescriptionID != "" {
			// Guard de transición: 0 filas afectadas significa que otra venta
			// concurrente ya despachó la fórmula.
			if err := presRepo.UpdateStatus(prescriptionID, entity.PrescriptionStatusPending, entity.PrescriptionStatusFilled); err != nil {
				return err
			}
		}

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i := range sale.Details {
			if err := saleRepo.CreateDetail(&sale.Details[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil && alertsRaised > 0 {
		uc.metrics.AlertsRaised.WithLabelValues(entity.AlertTypeStock).Add(float64(alertsRaised))
	}
	return nil
}

// toResponse expande la venta con nombres de cliente, cajero y medicamentos.
func (uc *SaleUseCase) toResponse(sale *entity.Sale, customerName string, lines []cartLine) *dto.SaleResponse {
	namesByID := make(map[string]string, len(lines))
	for _, ln := range lines {
		namesByID[ln.medicine.ID] = ln.medicine.Name
	}

	var cashierName string
	if cashier, err := uc.userRepo.GetByID(sale.CashierID); err == nil && cashier != nil {
		cashierName = cashier.Name
	}

	resp := &dto.SaleResponse{
		ID:             sale.ID,
		CustomerID:     sale.CustomerID,
		CustomerName:   customerName,
		PrescriptionID: sale.PrescriptionID,
		Subtotal:       sale.Subtotal,
		Tax:            sale.Tax,
		Discount:       sale.Discount,
		Total:          sale.Total,
		PaymentMethod:  sale.PaymentMethod,
		CashierID:      sale.CashierID,
		CashierName:    cashierName,
		Notes:          sale.Notes,
		SaleDate:       sale.SaleDate.Format("2006-01-02 15:04:05"),
		Details:        make([]dto.SaleDetailResponse, 0, len(sale.Details)),
	}
	for _, d := range sale.Details {
		resp.Details = append(resp.Details, dto.SaleDetailResponse{
			ID:           d.ID,
			MedicineID:   d.MedicineID,
			MedicineName: namesByID[d.MedicineID],
			Quantity:     d.Quantity,
			UnitPrice:    d.UnitPrice,
			Discount:     d.Discount,
			Subtotal:     d.Subtotal,
		})
	}
	return resp
}
