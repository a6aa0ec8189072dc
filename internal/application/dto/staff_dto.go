package dto

import "github.com/shopspring/decimal"

// UpdateStaffRequest body para PUT /api/staff/:id (solo admin).
type UpdateStaffRequest struct {
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Status     string          `json:"status"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Allowances decimal.Decimal `json:"allowances"`
}

// PayrollResponse liquidación mensual de un miembro del personal.
// gross = base + auxilios; deducciones de salud y pensión al 4% cada una.
type PayrollResponse struct {
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Allowances decimal.Decimal `json:"allowances"`
	Gross      decimal.Decimal `json:"gross"`
	Health     decimal.Decimal `json:"health_deduction"`
	Pension    decimal.Decimal `json:"pension_deduction"`
	Net        decimal.Decimal `json:"net"`
}
