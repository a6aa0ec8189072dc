package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (r *stubUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(u *entity.User) error              { r.users[u.ID] = u; return nil }
func (r *stubUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func TestPayroll_DeduccionesDeLey(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*entity.User{
		"u-1": {
			ID:         "u-1",
			Name:       "Carlos Farmaceuta",
			Role:       entity.RoleFarmaceutico,
			BaseSalary: decimal.NewFromInt(2000000),
			Allowances: decimal.NewFromInt(200000),
		},
	}}
	uc := NewStaffUseCase(repo)

	p, err := uc.Payroll(context.Background(), "u-1")
	require.NoError(t, err)

	// bruto 2.200.000; salud y pensión 4% c/u = 88.000; neto 2.024.000
	assert.True(t, p.Gross.Equal(decimal.NewFromInt(2200000)), "bruto fue %s", p.Gross)
	assert.True(t, p.Health.Equal(decimal.NewFromInt(88000)), "salud fue %s", p.Health)
	assert.True(t, p.Pension.Equal(decimal.NewFromInt(88000)), "pensión fue %s", p.Pension)
	assert.True(t, p.Net.Equal(decimal.NewFromInt(2024000)), "neto fue %s", p.Net)
}

func TestPayroll_RedondeoADosDecimales(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*entity.User{
		"u-1": {
			ID:         "u-1",
			Name:       "Ana Cajera",
			Role:       entity.RoleCajero,
			BaseSalary: decimal.NewFromFloat(1111111.11),
			Allowances: decimal.Zero,
		},
	}}
	uc := NewStaffUseCase(repo)

	p, err := uc.Payroll(context.Background(), "u-1")
	require.NoError(t, err)

	// 4% de 1.111.111,11 = 44.444,4444 → 44.444,44
	assert.True(t, p.Health.Equal(decimal.NewFromFloat(44444.44)), "salud fue %s", p.Health)
	assert.True(t, p.Net.Equal(p.Gross.Sub(p.Health).Sub(p.Pension)))
}

func TestPayroll_UsuarioInexistente(t *testing.T) {
	uc := NewStaffUseCase(&stubUserRepo{users: map[string]*entity.User{}})

	_, err := uc.Payroll(context.Background(), "nadie")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
