package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.PrescriptionRepository = (*PrescriptionRepo)(nil)

// PrescriptionRepo implementación de PrescriptionRepository sobre PostgreSQL (usable con pool o tx).
type PrescriptionRepo struct {
	q Querier
}

// NewPrescriptionRepository construye el adaptador de fórmulas. Pasar pool o tx (Querier).
func NewPrescriptionRepository(q Querier) *PrescriptionRepo {
	return &PrescriptionRepo{q: q}
}

// Create persiste la fórmula con sus líneas.
func (r *PrescriptionRepo) Create(p *entity.Prescription) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO prescriptions (id, customer_id, doctor_name, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CustomerID, p.DoctorName, p.Status, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}
	for _, item := range p.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO prescription_items (id, prescription_id, medicine_id, quantity, dosage, duration, instructions)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.PrescriptionID, item.MedicineID, item.Quantity,
			item.Dosage, item.Duration, item.Instructions,
		)
		if err != nil {
			return fmt.Errorf("insert prescription item: %w", err)
		}
	}
	return nil
}

// GetByIDWithItems devuelve la fórmula con sus líneas; nil si no existe.
func (r *PrescriptionRepo) GetByIDWithItems(id string) (*entity.Prescription, error) {
	ctx := context.Background()
	var p entity.Prescription
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_id, doctor_name, status, notes, created_at, updated_at
		FROM prescriptions WHERE id = $1`, id,
	).Scan(&p.ID, &p.CustomerID, &p.DoctorName, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prescription: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, prescription_id, medicine_id, quantity, dosage, duration, instructions
		FROM prescription_items WHERE prescription_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get prescription items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.PrescriptionItem
		if err := rows.Scan(&item.ID, &item.PrescriptionID, &item.MedicineID, &item.Quantity,
			&item.Dosage, &item.Duration, &item.Instructions); err != nil {
			return nil, fmt.Errorf("scan prescription item: %w", err)
		}
		p.Items = append(p.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// List filtra fórmulas por estado y/o cliente (sin líneas).
func (r *PrescriptionRepo) List(status, customerID string, limit, offset int) ([]*entity.Prescription, error) {
	query := `
		SELECT id, customer_id, doctor_name, status, notes, created_at, updated_at
		FROM prescriptions
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR customer_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, status, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Prescription
	for rows.Next() {
		var p entity.Prescription
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.DoctorName, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado solo si el actual es fromStatus. El guard en
// el WHERE hace la transición atómica: dos despachos concurrentes de la misma
// fórmula no pueden pasar ambos, el segundo recibe ErrInvalidState.
func (r *PrescriptionRepo) UpdateStatus(id, fromStatus, toStatus string) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE prescriptions SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, fromStatus, toStatus,
	)
	if err != nil {
		return fmt.Errorf("update prescription status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: la fórmula no está en estado %s", domain.ErrInvalidState, fromStatus)
	}
	return nil
}
