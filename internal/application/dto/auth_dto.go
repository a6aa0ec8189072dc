package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Name       string          `json:"name"`
	Role       string          `json:"role,omitempty"` // admin | farmaceutico | cajero
	BaseSalary decimal.Decimal `json:"base_salary,omitempty"`
	Allowances decimal.Decimal `json:"allowances,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario en respuestas (sin hash de contraseña).
type UserResponse struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Status     string          `json:"status"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Allowances decimal.Decimal `json:"allowances"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
