package entity

import "time"

// Customer representa un cliente/paciente de la farmacia.
// Las ventas lo referencian pero nunca lo modifican.
type Customer struct {
	ID         string
	Name       string
	DocumentID string // cédula o NIT
	Email      string
	Phone      string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
