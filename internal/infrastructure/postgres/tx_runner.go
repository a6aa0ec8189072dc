package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// Ensure TxRunner implements sales.SaleTxRunner and inventory.MovementTxRunner.
var _ sales.SaleTxRunner = (*TxRunner)(nil)
var _ inventory.MovementTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción con los repos de la venta: stock, venta,
// alertas, auditoría y fórmulas. Rollback implícito si fn o Commit fallan.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	medicineRepo repository.MedicineRepository,
	saleRepo repository.SaleRepository,
	alertRepo repository.AlertRepository,
	movementRepo repository.InventoryMovementRepository,
	prescriptionRepo repository.PrescriptionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	medicineRepo := NewMedicineRepository(tx)
	saleRepo := NewSaleRepository(tx)
	alertRepo := NewAlertRepository(tx)
	movementRepo := NewInventoryMovementRepository(tx)
	prescriptionRepo := NewPrescriptionRepository(tx)

	if err := fn(medicineRepo, saleRepo, alertRepo, movementRepo, prescriptionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMovement inicia una transacción para un movimiento manual de inventario.
func (r *TxRunner) RunMovement(ctx context.Context, fn func(
	medicineRepo repository.MedicineRepository,
	alertRepo repository.AlertRepository,
	movementRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMedicineRepository(tx), NewAlertRepository(tx), NewInventoryMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
