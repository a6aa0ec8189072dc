package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// Tasas de deducción de ley sobre el salario bruto.
var (
	healthRate  = decimal.NewFromFloat(0.04)
	pensionRate = decimal.NewFromFloat(0.04)
)

// StaffUseCase administración del personal y liquidación de nómina.
type StaffUseCase struct {
	userRepo repository.UserRepository
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(userRepo repository.UserRepository) *StaffUseCase {
	return &StaffUseCase{userRepo: userRepo}
}

// List devuelve el personal registrado.
func (uc *StaffUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toStaffResponse(u))
	}
	return out, nil
}

// GetByID devuelve un miembro del personal.
func (uc *StaffUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return toStaffResponse(user), nil
}

// Update modifica nombre, rol, estado y datos salariales (solo admin).
func (uc *StaffUseCase) Update(ctx context.Context, id string, in dto.UpdateStaffRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleFarmaceutico, entity.RoleCajero:
	default:
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	switch in.Status {
	case "active", "inactive":
	default:
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	if in.BaseSalary.IsNegative() || in.Allowances.IsNegative() {
		return nil, fmt.Errorf("%w: salario y auxilios no pueden ser negativos", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}

	user.Name = name
	user.Role = in.Role
	user.Status = in.Status
	user.BaseSalary = in.BaseSalary
	user.Allowances = in.Allowances
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toStaffResponse(user), nil
}

// Payroll liquida la nómina mensual de un miembro del personal:
// bruto = salario base + auxilios; salud y pensión al 4% cada una sobre el
// bruto; neto = bruto − deducciones. Redondeo a 2 decimales por rubro.
func (uc *StaffUseCase) Payroll(ctx context.Context, id string) (*dto.PayrollResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}

	gross := user.BaseSalary.Add(user.Allowances)
	health := gross.Mul(healthRate).Round(2)
	pension := gross.Mul(pensionRate).Round(2)
	net := gross.Sub(health).Sub(pension)

	return &dto.PayrollResponse{
		UserID:     user.ID,
		Name:       user.Name,
		Role:       user.Role,
		BaseSalary: user.BaseSalary,
		Allowances: user.Allowances,
		Gross:      gross,
		Health:     health,
		Pension:    pension,
		Net:        net,
	}, nil
}

func toStaffResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Status:     u.Status,
		BaseSalary: u.BaseSalary,
		Allowances: u.Allowances,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
