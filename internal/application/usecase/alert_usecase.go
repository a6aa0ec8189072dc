package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// AlertUseCase consulta y gestión de lectura de alertas. La generación vive
// en los paquetes sales e inventory, dentro de sus transacciones.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// List devuelve alertas, opcionalmente solo no leídas y/o de un tipo.
func (uc *AlertUseCase) List(ctx context.Context, in dto.ListAlertsRequest) ([]dto.AlertResponse, error) {
	in.DefaultPage()
	if in.Type != "" {
		switch in.Type {
		case entity.AlertTypeStock, entity.AlertTypeExpiry, entity.AlertTypeSystem, entity.AlertTypePrescription:
		default:
			return nil, fmt.Errorf("%w: tipo de alerta %q", domain.ErrInvalidInput, in.Type)
		}
	}
	alerts, err := uc.alertRepo.List(in.Unread, in.Type, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertResponse{
			ID:         a.ID,
			Type:       a.Type,
			Severity:   a.Severity,
			Title:      a.Title,
			Message:    a.Message,
			MedicineID: a.MedicineID,
			IsRead:     a.IsRead,
			CreatedAt:  a.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una alerta como leída. Leer la alerta rearma la
// deduplicación: el siguiente cruce de umbral volverá a alertar.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	return uc.alertRepo.MarkRead(id)
}

// MarkAllRead marca todas las alertas como leídas.
func (uc *AlertUseCase) MarkAllRead(ctx context.Context) error {
	return uc.alertRepo.MarkAllRead()
}

// CountUnread devuelve el número de alertas no leídas (badge del tablero).
func (uc *AlertUseCase) CountUnread(ctx context.Context) (int, error) {
	return uc.alertRepo.CountUnread()
}
