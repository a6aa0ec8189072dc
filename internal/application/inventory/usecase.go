// Package inventory implementa los movimientos manuales de stock (entradas,
// salidas y ajustes) con costo promedio ponderado, y el barrido de
// vencimientos que genera alertas EXPIRY.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/alerting"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// MovementTxRunner ejecuta un movimiento de inventario en una transacción:
// lock del medicamento, ajuste de stock, registro de auditoría y alertas.
type MovementTxRunner interface {
	RunMovement(ctx context.Context, fn func(
		medicineRepo repository.MedicineRepository,
		alertRepo repository.AlertRepository,
		movementRepo repository.InventoryMovementRepository,
	) error) error
}

// UseCase caso de uso de inventario.
type UseCase struct {
	txRunner     MovementTxRunner
	medicineRepo repository.MedicineRepository
	movementRepo repository.InventoryMovementRepository
	alertRepo    repository.AlertRepository
	expiryWindow int // días hacia adelante del barrido de vencimientos
}

// NewUseCase construye el caso de uso. expiryWindowDays define la ventana
// del barrido de vencimientos (típicamente 30).
func NewUseCase(
	txRunner MovementTxRunner,
	medicineRepo repository.MedicineRepository,
	movementRepo repository.InventoryMovementRepository,
	alertRepo repository.AlertRepository,
	expiryWindowDays int,
) *UseCase {
	if expiryWindowDays <= 0 {
		expiryWindowDays = 30
	}
	return &UseCase{
		txRunner:     txRunner,
		medicineRepo: medicineRepo,
		movementRepo: movementRepo,
		alertRepo:    alertRepo,
		expiryWindow: expiryWindowDays,
	}
}

// RegisterMovement aplica un movimiento manual de stock.
//   - IN: quantity > 0 y unit_cost requerido; recalcula el costo promedio
//     ponderado: (stock·costo + qty·costo_unitario) / (stock + qty).
//   - OUT: quantity > 0; falla con stock insuficiente y puede generar
//     alerta de bajo stock.
//   - ADJUSTMENT: quantity con signo (resultado de conteo físico); nunca
//     deja el stock negativo.
func (uc *UseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.MedicineID == "" {
		return nil, fmt.Errorf("%w: medicamento requerido", domain.ErrInvalidInput)
	}
	switch in.Type {
	case entity.MovementTypeIN:
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: una entrada requiere cantidad positiva", domain.ErrInvalidInput)
		}
		if in.UnitCost == nil || in.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: una entrada requiere costo unitario", domain.ErrInvalidInput)
		}
	case entity.MovementTypeOUT:
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: una salida requiere cantidad positiva", domain.ErrInvalidInput)
		}
	case entity.MovementTypeADJUSTMENT:
		if in.Quantity == 0 {
			return nil, fmt.Errorf("%w: un ajuste de cero unidades no tiene efecto", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}

	var resp *dto.MovementResponse
	err := uc.txRunner.RunMovement(ctx, func(
		medicineRepo repository.MedicineRepository,
		alertRepo repository.AlertRepository,
		movementRepo repository.InventoryMovementRepository,
	) error {
		med, err := medicineRepo.GetForUpdate(in.MedicineID)
		if err != nil {
			return err
		}
		if med == nil {
			return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, in.MedicineID)
		}

		delta := in.Quantity
		if in.Type == entity.MovementTypeOUT {
			delta = -in.Quantity
		}
		if med.Quantity+delta < 0 {
			return &domain.InsufficientStockError{
				MedicineID:   med.ID,
				MedicineName: med.Name,
				Available:    med.Quantity,
				Requested:    -delta,
			}
		}

		unitCost := med.Cost
		if in.Type == entity.MovementTypeIN {
			unitCost = *in.UnitCost
			// costo promedio ponderado sobre el stock previo a la entrada
			newCost := weightedAverageCost(med.Quantity, med.Cost, in.Quantity, unitCost)
			if err := medicineRepo.UpdateCost(med.ID, newCost); err != nil {
				return err
			}
		}

		newQty, err := medicineRepo.AdjustQuantity(med.ID, delta)
		if err != nil {
			return err
		}

		now := time.Now()
		mov := &entity.InventoryMovement{
			ID:         uuid.New().String(),
			MedicineID: med.ID,
			Type:       in.Type,
			Quantity:   delta,
			UnitCost:   unitCost,
			TotalCost:  unitCost.Mul(decimal.NewFromInt(delta)),
			Date:       now,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}

		// solo las salidas de stock pueden cruzar el umbral hacia abajo
		if delta < 0 {
			if _, err := alerting.RaiseLowStock(alertRepo, med, newQty, now); err != nil {
				return err
			}
		}

		resp = toMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// weightedAverageCost promedio ponderado entre el stock existente y la entrada.
// Si no había stock, el costo pasa a ser el de la entrada.
func weightedAverageCost(prevQty int64, prevCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	totalQty := prevQty + inQty
	if totalQty <= 0 {
		return inCost
	}
	prevValue := prevCost.Mul(decimal.NewFromInt(prevQty))
	inValue := inCost.Mul(decimal.NewFromInt(inQty))
	return prevValue.Add(inValue).DivRound(decimal.NewFromInt(totalQty), 4)
}

// ListMovements historial de movimientos de un medicamento.
func (uc *UseCase) ListMovements(ctx context.Context, medicineID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if medicineID == "" {
		return nil, fmt.Errorf("%w: medicamento requerido", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	movs, err := uc.movementRepo.ListByMedicine(medicineID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// ExpiryScan recorre los medicamentos que vencen dentro de la ventana
// configurada y genera alertas EXPIRY deduplicadas. Idempotente: correrlo
// dos veces seguidas no duplica alertas.
func (uc *UseCase) ExpiryScan(ctx context.Context) (*dto.ExpiryScanResponse, error) {
	meds, err := uc.medicineRepo.List(repository.MedicineFilter{
		ExpiringDays: uc.expiryWindow,
		Limit:        10000,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	raised := 0
	for _, med := range meds {
		ok, err := alerting.RaiseExpiry(uc.alertRepo, med, now)
		if err != nil {
			return nil, err
		}
		if ok {
			raised++
		}
	}
	return &dto.ExpiryScanResponse{Scanned: len(meds), Raised: raised}, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		MedicineID:    m.MedicineID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		Date:          m.Date,
		CreatedBy:     m.CreatedBy,
	}
}
