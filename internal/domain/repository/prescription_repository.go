package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// PrescriptionRepository define el puerto de persistencia para fórmulas médicas.
type PrescriptionRepository interface {
	Create(prescription *entity.Prescription) error
	// GetByIDWithItems devuelve la fórmula con sus líneas; nil si no existe.
	GetByIDWithItems(id string) (*entity.Prescription, error)
	List(status, customerID string, limit, offset int) ([]*entity.Prescription, error)
	// UpdateStatus cambia el estado solo si el estado actual es fromStatus
	// (guard de transición). Si no afecta filas retorna ErrInvalidState.
	UpdateStatus(id, fromStatus, toStatus string) error
}
