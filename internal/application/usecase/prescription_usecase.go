package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// PrescriptionUseCase registro y consulta de fórmulas médicas.
// El despacho (fill) vive en el paquete sales porque genera una venta.
type PrescriptionUseCase struct {
	prescriptionRepo repository.PrescriptionRepository
	customerRepo     repository.CustomerRepository
	medicineRepo     repository.MedicineRepository
}

// NewPrescriptionUseCase construye el caso de uso.
func NewPrescriptionUseCase(
	prescriptionRepo repository.PrescriptionRepository,
	customerRepo repository.CustomerRepository,
	medicineRepo repository.MedicineRepository,
) *PrescriptionUseCase {
	return &PrescriptionUseCase{
		prescriptionRepo: prescriptionRepo,
		customerRepo:     customerRepo,
		medicineRepo:     medicineRepo,
	}
}

// Create registra una fórmula en estado PENDING. Valida que el cliente y
// todos los medicamentos existan; no valida stock (se chequea al despachar).
func (uc *PrescriptionUseCase) Create(ctx context.Context, in dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la fórmula necesita al menos una línea", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	now := time.Now()
	prescription := &entity.Prescription{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		DoctorName: in.DoctorName,
		Status:     entity.PrescriptionStatusPending,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
		}
		med, err := uc.medicineRepo.GetByID(item.MedicineID)
		if err != nil {
			return nil, err
		}
		if med == nil {
			return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, item.MedicineID)
		}
		prescription.Items = append(prescription.Items, entity.PrescriptionItem{
			ID:             uuid.New().String(),
			PrescriptionID: prescription.ID,
			MedicineID:     item.MedicineID,
			Quantity:       item.Quantity,
			Dosage:         item.Dosage,
			Duration:       item.Duration,
			Instructions:   item.Instructions,
		})
	}

	if err := uc.prescriptionRepo.Create(prescription); err != nil {
		return nil, err
	}
	return toPrescriptionResponse(prescription), nil
}

// GetByID devuelve una fórmula con sus líneas.
func (uc *PrescriptionUseCase) GetByID(ctx context.Context, id string) (*dto.PrescriptionResponse, error) {
	prescription, err := uc.prescriptionRepo.GetByIDWithItems(id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, fmt.Errorf("%w: fórmula %s", domain.ErrNotFound, id)
	}
	return toPrescriptionResponse(prescription), nil
}

// List filtra fórmulas por estado y/o cliente.
func (uc *PrescriptionUseCase) List(ctx context.Context, in dto.ListPrescriptionsRequest) ([]dto.PrescriptionResponse, error) {
	in.DefaultPage()
	if in.Status != "" {
		switch in.Status {
		case entity.PrescriptionStatusPending, entity.PrescriptionStatusFilled,
			entity.PrescriptionStatusPartial, entity.PrescriptionStatusCancelled:
		default:
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
		}
	}
	prescriptions, err := uc.prescriptionRepo.List(in.Status, in.CustomerID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		out = append(out, *toPrescriptionResponse(p))
	}
	return out, nil
}

// Cancel anula una fórmula PENDING. FILLED y CANCELLED son terminales.
func (uc *PrescriptionUseCase) Cancel(ctx context.Context, id string) error {
	prescription, err := uc.prescriptionRepo.GetByIDWithItems(id)
	if err != nil {
		return err
	}
	if prescription == nil {
		return fmt.Errorf("%w: fórmula %s", domain.ErrNotFound, id)
	}
	return uc.prescriptionRepo.UpdateStatus(id, entity.PrescriptionStatusPending, entity.PrescriptionStatusCancelled)
}

func toPrescriptionResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	resp := &dto.PrescriptionResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		DoctorName: p.DoctorName,
		Status:     p.Status,
		Notes:      p.Notes,
		Items:      make([]dto.PrescriptionItemResponse, 0, len(p.Items)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.PrescriptionItemResponse{
			ID:           item.ID,
			MedicineID:   item.MedicineID,
			Quantity:     item.Quantity,
			Dosage:       item.Dosage,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		})
	}
	return resp
}
