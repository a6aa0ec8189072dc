package entity

import "time"

// Estados de una fórmula médica.
// PENDING → FILLED (una sola vez, vía el despacho) o PENDING → CANCELLED.
// FILLED y CANCELLED son terminales. PARTIAL solo es alcanzable por
// actualización directa de estado; ninguna operación lo produce.
const (
	PrescriptionStatusPending   = "PENDING"
	PrescriptionStatusFilled    = "FILLED"
	PrescriptionStatusPartial   = "PARTIAL"
	PrescriptionStatusCancelled = "CANCELLED"
)

// Prescription representa una fórmula médica de un cliente.
type Prescription struct {
	ID         string
	CustomerID string
	DoctorName string
	Status     string
	Notes      string
	Items      []PrescriptionItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PrescriptionItem una línea de la fórmula: medicamento, cantidad y posología.
type PrescriptionItem struct {
	ID             string
	PrescriptionID string
	MedicineID     string
	Quantity       int64
	Dosage         string
	Duration       string
	Instructions   string
}
