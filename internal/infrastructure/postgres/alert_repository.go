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

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, type, severity, title, message, COALESCE(medicine_id, ''), is_read, created_at`

// Create persiste una alerta.
func (r *AlertRepo) Create(a *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, type, severity, title, message, medicine_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Type, a.Severity, a.Title, a.Message, a.MedicineID, a.IsRead, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// FindUnread busca una alerta no leída del tipo dado para un medicamento
// (clave de deduplicación); nil si no hay.
func (r *AlertRepo) FindUnread(alertType, medicineID string) (*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE type = $1 AND medicine_id = $2 AND is_read = false
		LIMIT 1`
	var a entity.Alert
	err := r.q.QueryRow(context.Background(), query, alertType, medicineID).Scan(
		&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message, &a.MedicineID, &a.IsRead, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find unread alert: %w", err)
	}
	return &a, nil
}

// List devuelve alertas, opcionalmente solo no leídas y/o de un tipo.
func (r *AlertRepo) List(onlyUnread bool, alertType string, limit, offset int) ([]*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE ($1 = false OR is_read = false) AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, onlyUnread, alertType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Severity, &a.Title, &a.Message, &a.MedicineID, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead marca una alerta como leída.
func (r *AlertRepo) MarkRead(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE alerts SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas las alertas como leídas.
func (r *AlertRepo) MarkAllRead() error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE alerts SET is_read = true WHERE is_read = false`)
	if err != nil {
		return fmt.Errorf("mark all alerts read: %w", err)
	}
	return nil
}

// CountUnread devuelve el número de alertas no leídas.
func (r *AlertRepo) CountUnread() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM alerts WHERE is_read = false`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread alerts: %w", err)
	}
	return n, nil
}
