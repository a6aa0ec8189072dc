package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del registro de auditoría de stock
// sobre PostgreSQL (usable con pool o tx). Los movimientos son inmutables.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, transaction_id, medicine_id, type, quantity, unit_cost, total_cost, date, created_at, created_by)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TransactionID, m.MedicineID, m.Type, m.Quantity,
		m.UnitCost, m.TotalCost, m.Date, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// ListByMedicine historial de movimientos de un medicamento, más recientes primero.
func (r *InventoryMovementRepo) ListByMedicine(medicineID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, COALESCE(transaction_id, ''), medicine_id, type, quantity, unit_cost, total_cost, date, created_at, created_by
		FROM inventory_movements
		WHERE medicine_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, medicineID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.MedicineID, &m.Type, &m.Quantity,
			&m.UnitCost, &m.TotalCost, &m.Date, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
