package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeStock        = "STOCK"
	AlertTypeExpiry       = "EXPIRY"
	AlertTypeSystem       = "SYSTEM"
	AlertTypePrescription = "PRESCRIPTION"
)

// Severidades de alerta.
const (
	AlertSeverityLow      = "LOW"
	AlertSeverityMedium   = "MEDIUM"
	AlertSeverityHigh     = "HIGH"
	AlertSeverityCritical = "CRITICAL"
)

// Alert representa una notificación generada por el sistema.
// Las alertas generadas (STOCK, EXPIRY) se deduplican por (Type, MedicineID)
// entre las no leídas; MedicineID vacío para alertas SYSTEM/PRESCRIPTION.
type Alert struct {
	ID         string
	Type       string
	Severity   string
	Title      string
	Message    string
	MedicineID string
	IsRead     bool
	CreatedAt  time.Time
}
