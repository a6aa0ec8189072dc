package dto

import "time"

// ListAlertsRequest query params del listado de alertas.
type ListAlertsRequest struct {
	PageRequest
	Unread bool   `query:"unread"`
	Type   string `query:"type"` // STOCK | EXPIRY | SYSTEM | PRESCRIPTION
}

// AlertResponse alerta en respuestas.
type AlertResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Severity   string    `json:"severity"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	MedicineID string    `json:"medicine_id,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExpiryScanResponse resultado del barrido de vencimientos.
type ExpiryScanResponse struct {
	Scanned int `json:"scanned"`
	Raised  int `json:"raised"`
}
