package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	// FindUnread busca una alerta no leída del tipo dado para un medicamento.
	// Es la clave de deduplicación (type, medicine_id); nil si no hay.
	FindUnread(alertType, medicineID string) (*entity.Alert, error)
	List(onlyUnread bool, alertType string, limit, offset int) ([]*entity.Alert, error)
	MarkRead(id string) error
	MarkAllRead() error
	CountUnread() (int, error)
}
