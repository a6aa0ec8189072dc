// Package usecase agrupa los casos de uso CRUD y de consulta que no
// requieren transacciones multi-tabla: medicamentos, clientes, fórmulas,
// alertas, personal y tableros.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/normalize"
)

// MedicineUseCase CRUD y búsqueda del catálogo de medicamentos.
type MedicineUseCase struct {
	medicineRepo repository.MedicineRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(medicineRepo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{medicineRepo: medicineRepo}
}

// Create da de alta un medicamento. El nombre es único en el catálogo.
func (uc *MedicineUseCase) Create(ctx context.Context, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio debe ser positivo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
	}

	existing, err := uc.medicineRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un medicamento llamado %q", domain.ErrDuplicate, name)
	}

	now := time.Now()
	med := &entity.Medicine{
		ID:            uuid.New().String(),
		Name:          name,
		GenericName:   strings.TrimSpace(in.GenericName),
		Category:      strings.TrimSpace(in.Category),
		Description:   in.Description,
		Price:         in.Price,
		Quantity:      in.Quantity,
		MinStockLevel: in.MinStockLevel,
		ExpiryDate:    in.ExpiryDate,
		BatchNumber:   in.BatchNumber,
		Manufacturer:  in.Manufacturer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.medicineRepo.Create(med); err != nil {
		return nil, err
	}
	return toMedicineResponse(med), nil
}

// GetByID devuelve un medicamento por su id.
func (uc *MedicineUseCase) GetByID(ctx context.Context, id string) (*dto.MedicineResponse, error) {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return toMedicineResponse(med), nil
}

// Update modifica los datos del catálogo. Quantity y Cost no se tocan por
// aquí: el stock solo cambia vía ventas y movimientos.
func (uc *MedicineUseCase) Update(ctx context.Context, id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio debe ser positivo", domain.ErrInvalidInput)
	}
	if in.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: umbral mínimo negativo", domain.ErrInvalidInput)
	}

	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}

	if name != med.Name {
		dup, err := uc.medicineRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id {
			return nil, fmt.Errorf("%w: ya existe un medicamento llamado %q", domain.ErrDuplicate, name)
		}
	}

	med.Name = name
	med.GenericName = strings.TrimSpace(in.GenericName)
	med.Category = strings.TrimSpace(in.Category)
	med.Description = in.Description
	med.Price = in.Price
	med.MinStockLevel = in.MinStockLevel
	med.ExpiryDate = in.ExpiryDate
	med.BatchNumber = in.BatchNumber
	med.Manufacturer = in.Manufacturer
	med.UpdatedAt = time.Now()

	if err := uc.medicineRepo.Update(med); err != nil {
		return nil, err
	}
	return toMedicineResponse(med), nil
}

// Delete elimina un medicamento del catálogo.
func (uc *MedicineUseCase) Delete(ctx context.Context, id string) error {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return err
	}
	if med == nil {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return uc.medicineRepo.Delete(id)
}

// List busca en el catálogo. El término de búsqueda se normaliza
// (minúsculas, sin tildes) para que "acetaminofen" encuentre "Acetaminofén".
func (uc *MedicineUseCase) List(ctx context.Context, in dto.ListMedicinesRequest) ([]dto.MedicineResponse, error) {
	in.DefaultPage()
	meds, err := uc.medicineRepo.List(repository.MedicineFilter{
		Search:       normalize.Search(in.Search),
		Category:     strings.TrimSpace(in.Category),
		LowStock:     in.LowStock,
		ExpiringDays: in.ExpiringDays,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, *toMedicineResponse(m))
	}
	return out, nil
}

func toMedicineResponse(m *entity.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:            m.ID,
		Name:          m.Name,
		GenericName:   m.GenericName,
		Category:      m.Category,
		Description:   m.Description,
		Price:         m.Price,
		Cost:          m.Cost,
		Quantity:      m.Quantity,
		MinStockLevel: m.MinStockLevel,
		LowStock:      m.IsLowStock(),
		ExpiryDate:    m.ExpiryDate,
		BatchNumber:   m.BatchNumber,
		Manufacturer:  m.Manufacturer,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
