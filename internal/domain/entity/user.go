package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles del personal de la farmacia.
const (
	RoleAdmin        = "admin"
	RoleFarmaceutico = "farmaceutico"
	RoleCajero       = "cajero"
)

// User representa un miembro del personal (staff) con credenciales y datos de nómina.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	BaseSalary   decimal.Decimal
	Allowances   decimal.Decimal // auxilios y bonificaciones mensuales
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
