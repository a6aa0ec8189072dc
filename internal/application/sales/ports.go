package sales

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del cuarteto
// venta + decremento de stock + alertas + (opcional) estado de la fórmula:
// o se aplican todos los efectos o ninguno.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		medicineRepo repository.MedicineRepository,
		saleRepo repository.SaleRepository,
		alertRepo repository.AlertRepository,
		movementRepo repository.InventoryMovementRepository,
		prescriptionRepo repository.PrescriptionRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante de una venta en PDF.
// La implementación vive en infraestructura (Maroto).
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *dto.SaleResponse) ([]byte, error)
}
