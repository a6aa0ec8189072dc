package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePrescriptionRequest body para POST /api/prescriptions.
type CreatePrescriptionRequest struct {
	CustomerID string                      `json:"customer_id"`
	DoctorName string                      `json:"doctor_name,omitempty"`
	Notes      string                      `json:"notes,omitempty"`
	Items      []PrescriptionItemRequest   `json:"items"`
}

// PrescriptionItemRequest línea de la fórmula.
type PrescriptionItemRequest struct {
	MedicineID   string `json:"medicine_id"`
	Quantity     int64  `json:"quantity"`
	Dosage       string `json:"dosage,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// FillPrescriptionRequest body para POST /api/prescriptions/:id/fill.
// El precio unitario se toma del precio vigente del medicamento al despachar.
type FillPrescriptionRequest struct {
	PaymentMethod string          `json:"payment_method,omitempty"` // default CASH
	Discount      decimal.Decimal `json:"discount,omitempty"`
}

// ListPrescriptionsRequest query params del listado.
type ListPrescriptionsRequest struct {
	PageRequest
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
}

// PrescriptionResponse fórmula con líneas en respuestas.
type PrescriptionResponse struct {
	ID         string                     `json:"id"`
	CustomerID string                     `json:"customer_id"`
	DoctorName string                     `json:"doctor_name,omitempty"`
	Status     string                     `json:"status"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []PrescriptionItemResponse `json:"items"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// PrescriptionItemResponse línea de la fórmula en respuestas.
type PrescriptionItemResponse struct {
	ID           string `json:"id"`
	MedicineID   string `json:"medicine_id"`
	Quantity     int64  `json:"quantity"`
	Dosage       string `json:"dosage,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}
