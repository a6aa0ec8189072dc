// Package alerting genera alertas de bajo stock y vencimiento con
// deduplicación por (tipo, medicamento) entre alertas no leídas.
package alerting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// RaiseLowStock crea una alerta STOCK si el nuevo stock quedó en o bajo el
// umbral mínimo y no existe ya una alerta STOCK no leída para el medicamento.
// Retorna true si se creó una alerta. Se llama dentro de la transacción de
// venta/movimiento para que la alerta participe del rollback.
func RaiseLowStock(alertRepo repository.AlertRepository, med *entity.Medicine, newQuantity int64, now time.Time) (bool, error) {
	if newQuantity > med.MinStockLevel {
		return false, nil
	}

	existing, err := alertRepo.FindUnread(entity.AlertTypeStock, med.ID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil // ya hay una alerta activa para este medicamento
	}

	alert := &entity.Alert{
		ID:         uuid.New().String(),
		Type:       entity.AlertTypeStock,
		Severity:   entity.AlertSeverityHigh,
		Title:      "Low Stock Alert",
		MedicineID: med.ID,
		Message: fmt.Sprintf("El medicamento %q quedó con %d unidades (mínimo %d)",
			med.Name, newQuantity, med.MinStockLevel),
		CreatedAt: now,
	}
	if newQuantity == 0 {
		alert.Severity = entity.AlertSeverityCritical
		alert.Title = "Out of Stock"
		alert.Message = fmt.Sprintf("El medicamento %q quedó agotado", med.Name)
	}

	if err := alertRepo.Create(alert); err != nil {
		return false, err
	}
	return true, nil
}

// RaiseExpiry crea una alerta EXPIRY para un medicamento próximo a vencer
// (CRITICAL si ya venció), con la misma deduplicación que RaiseLowStock.
func RaiseExpiry(alertRepo repository.AlertRepository, med *entity.Medicine, now time.Time) (bool, error) {
	existing, err := alertRepo.FindUnread(entity.AlertTypeExpiry, med.ID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	severity := entity.AlertSeverityHigh
	msg := fmt.Sprintf("El medicamento %q (lote %s) vence el %s",
		med.Name, med.BatchNumber, med.ExpiryDate.Format("2006-01-02"))
	if !med.ExpiryDate.After(now) {
		severity = entity.AlertSeverityCritical
		msg = fmt.Sprintf("El medicamento %q (lote %s) venció el %s",
			med.Name, med.BatchNumber, med.ExpiryDate.Format("2006-01-02"))
	}

	alert := &entity.Alert{
		ID:         uuid.New().String(),
		Type:       entity.AlertTypeExpiry,
		Severity:   severity,
		Title:      "Expiry Alert",
		Message:    msg,
		MedicineID: med.ID,
		CreatedAt:  now,
	}
	if err := alertRepo.Create(alert); err != nil {
		return false, err
	}
	return true, nil
}
